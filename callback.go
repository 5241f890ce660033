// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import "sync"

// WaitFunc blocks the calling task until the connection's pending wire
// exchange has completed, i.e. drives [Conn.Poll] until it returns nil.
// A scheduler integration typically suspends the task on the connection's
// descriptor between polls. It may return a scheduler error instead of
// returning normally; that error is propagated to the caller verbatim.
type WaitFunc func(c *Conn) error

// The process-wide callback slot. Registration is expected to happen at
// integration start-up, not interleaved with executions; the guard only
// keeps concurrent set/get internally consistent.
var (
	callbackMu   sync.RWMutex
	waitCallback WaitFunc
)

// SetWaitCallback registers fn as the process-wide wait callback,
// replacing any previous one. Passing nil clears the slot.
// The most recently registered value wins.
func SetWaitCallback(fn WaitFunc) {
	callbackMu.Lock()
	waitCallback = fn
	callbackMu.Unlock()
}

// WaitCallback returns the currently registered wait callback, or nil.
func WaitCallback() WaitFunc {
	callbackMu.RLock()
	fn := waitCallback
	callbackMu.RUnlock()
	return fn
}

// Cooperative reports whether a wait callback is registered, i.e. whether
// executions on this process take the cooperative path.
func Cooperative() bool {
	return WaitCallback() != nil
}
