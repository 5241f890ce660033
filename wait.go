// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import "code.hybscloud.com/iox"

// Wait suspends the calling task until c's pending exchange completes, by
// invoking the registered wait callback. This is the sole suspension point
// in the package: control passes to scheduler-managed code, which may
// itself suspend or switch tasks.
//
// Returns [ErrCallbackUnavailable] if no callback is registered; a
// callback failure is propagated verbatim. On nil return the exchange is
// complete and [Protocol.LastResult] will not block.
func Wait(c *Conn) error {
	fn := WaitCallback()
	if fn == nil {
		return ErrCallbackUnavailable
	}
	return fn(c)
}

// BackoffWait is a ready-made [WaitFunc] that drives the exchange with
// adaptive backoff instead of suspending on a scheduler. Intended for
// hosts without a cooperative runtime and for draining a cancellation
// acknowledgment in the stepping world.
func BackoffWait(c *Conn) error {
	var bo iox.Backoff
	for {
		err := c.Poll()
		if err == nil {
			return nil
		}
		if err != iox.ErrWouldBlock {
			return err
		}
		bo.Wait()
	}
}
