// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import (
	"code.hybscloud.com/kont"
)

// await is the effect operation for the readiness suspension between
// sending a command and fetching its result. One execution performs it
// exactly once; the wire collaborator loops between write-ready and
// read-ready sub-phases underneath it.
type await struct {
	kont.Phantom[struct{}]
}

// pollDispatcher is the structural interface for green effects.
// DispatchPoll is non-blocking: it returns iox.ErrWouldBlock at the I/O
// boundary while the socket is not yet ready.
type pollDispatcher interface {
	DispatchPoll(c *Conn) (kont.Resumed, error)
}

// DispatchPoll advances the pending exchange by one non-blocking step.
func (await) DispatchPoll(c *Conn) (kont.Resumed, error) {
	if err := c.Poll(); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}
