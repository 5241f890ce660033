// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Submit begins one execution of command on c and evaluates it to its
// first suspension, for event-loop integrations that drive readiness
// themselves instead of registering a blocking callback. The busy claim
// and the send happen eagerly; the returned suspension, if any, is the
// readiness wait.
//
// Returns (outcome, nil) when the execution completed without suspending
// (precondition or send failure), or (zero, suspension) while pending.
func Submit(c *Conn, command string) (Outcome, *kont.Suspension[Outcome]) {
	return kont.StepExpr(kont.Reify(execEff(c, command)))
}

// Advance dispatches the suspended readiness wait with one non-blocking
// poll.
//
// On iox.ErrWouldBlock the suspension is unconsumed and may be retried
// once the socket is ready. On nil the exchange completed: the suspension
// is consumed and the execution advances to its outcome. Any other poll
// error runs the cancellation handshake, discards the suspension, and
// completes with that original error as the outcome's Left.
func Advance(c *Conn, susp *kont.Suspension[Outcome]) (Outcome, *kont.Suspension[Outcome], error) {
	pop, ok := susp.Op().(pollDispatcher)
	if !ok {
		panic("green: unhandled effect in Advance")
	}
	v, err := pop.DispatchPoll(c)
	if err != nil {
		if err == iox.ErrWouldBlock {
			var zero Outcome
			return zero, susp, err
		}
		err = panicCancel(c, err)
		c.finish()
		susp.Discard()
		return left(err), nil, nil
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
