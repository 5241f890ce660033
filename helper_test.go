// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green_test

import (
	"testing"

	"code.hybscloud.com/green"
)

// scriptConn is a scripted Protocol for exercising failure paths without
// a wire. The zero value succeeds everywhere: send works, the first poll
// completes the exchange, LastResult hands out the configured result.
type scriptConn struct {
	sendErr   error
	pollErrs  []error // consumed one per Poll; a nil entry or exhaustion means done
	cancelErr error
	result    *green.Result
	resultErr error

	sent    []string
	polls   int
	cancels int
	closed  bool
}

func (p *scriptConn) Send(command string) error {
	p.sent = append(p.sent, command)
	return p.sendErr
}

func (p *scriptConn) Poll() (green.Status, error) {
	p.polls++
	if len(p.pollErrs) > 0 {
		err := p.pollErrs[0]
		p.pollErrs = p.pollErrs[1:]
		if err != nil {
			return green.StatusRead, err
		}
	}
	return green.StatusDone, nil
}

func (p *scriptConn) LastResult() (*green.Result, error) {
	res := p.result
	p.result = nil
	return res, p.resultErr
}

func (p *scriptConn) Cancel() error {
	p.cancels++
	return p.cancelErr
}

func (p *scriptConn) Close() {
	p.closed = true
}

// withCallback registers fn as the process-wide wait callback for the
// duration of the test. The registry is process-global, so tests using it
// must not run in parallel.
func withCallback(tb testing.TB, fn green.WaitFunc) {
	tb.Helper()
	green.SetWaitCallback(fn)
	tb.Cleanup(func() { green.SetWaitCallback(nil) })
}

// failNWait returns a WaitFunc that fails its first n invocations with
// err and succeeds afterwards.
func failNWait(n int, err error) green.WaitFunc {
	return func(*green.Conn) error {
		if n > 0 {
			n--
			return err
		}
		return nil
	}
}
