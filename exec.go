// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import (
	"code.hybscloud.com/kont"
	"github.com/pkg/errors"
)

// Outcome is the completion value of one execution protocol:
// Left carries the failure, Right the fetched result.
type Outcome = kont.Either[error, *Result]

func left(err error) Outcome    { return kont.Left[error, *Result](err) }
func right(res *Result) Outcome { return kont.Right[error](res) }

// execEff builds the execution protocol for command on c: claim the
// connection, send, await readiness, fetch. Construction is eager up to
// the await effect; the fetch and cleanup run when the effect is resumed.
// Cleanup is unconditional on every exit path past the claim.
func execEff(c *Conn, command string) kont.Eff[Outcome] {
	if err := c.begin(); err != nil {
		return kont.Pure(left(err))
	}
	if err := c.proto.Send(command); err != nil {
		c.finish()
		return kont.Pure(left(errors.Wrap(err, "green: send command")))
	}
	// Enter the exchange with a write. The collaborator moves the status
	// to StatusRead once the flush completes, without leaving the wait.
	c.status = StatusWrite
	return kont.Bind(kont.Perform(await{}), func(struct{}) kont.Eff[Outcome] {
		res, err := c.proto.LastResult()
		c.finish()
		if err != nil {
			return kont.Pure(left(errors.Wrap(err, "green: fetch result")))
		}
		return kont.Pure(right(res))
	})
}

// waitHandler implements kont.Handler for the await effect by suspending
// through the registered wait callback. On wait failure it runs the
// cancellation handshake and short-circuits with the original error as
// an Outcome, so it only handles protocols completing in Outcome.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type waitHandler struct {
	conn *Conn
}

// Dispatch implements kont.Handler via structural interface assertion.
// Blocking, if any, happens inside the callback, which is
// scheduler-visible and thus cooperatively preemptible.
func (h waitHandler) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if _, ok := op.(pollDispatcher); !ok {
		panic("green: unhandled effect in waitHandler")
	}
	if err := Wait(h.conn); err != nil {
		err = panicCancel(h.conn, err)
		h.conn.finish()
		return left(err), false
	}
	return struct{}{}, true
}

// Exec executes command on c, suspending through the registered wait
// callback while the socket is not ready.
//
// Returns [ErrCallbackUnavailable] without touching the connection when no
// callback is registered, and [ErrConcurrentQuery] when c already has a
// command in flight. A send failure is terminal. A wait failure triggers
// the cancellation handshake and is still the error returned;
// recovery-path failures surface only as warnings on c. The busy token
// is clear by the time Exec returns, whichever path was taken.
func Exec(c *Conn, command string) (*Result, error) {
	if !Cooperative() {
		return nil, ErrCallbackUnavailable
	}
	out := kont.Handle(execEff(c, command), waitHandler{conn: c})
	if err, ok := out.GetLeft(); ok {
		return nil, err
	}
	res, _ := out.GetRight()
	return res, nil
}
