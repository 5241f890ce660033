// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

// panicCancel attempts to leave c in a clean protocol state after a
// communication error during the wait. The failure is ambiguous, a
// genuine network fault or a misbehaving callback, and blocking to find
// out is unacceptable: try one cancellation round-trip, and if draining
// the acknowledgment fails too, sacrifice the connection rather than risk
// hanging forever.
//
// cause is the error already in flight; it is always the error returned.
// Recovery failures are recorded as warnings on c, never promoted.
func panicCancel(c *Conn, cause error) error {
	if cause == nil {
		// Logic inconsistency in the caller, not fatal to recovery.
		logWarn("msg", "cancel recovery entered without a pending error", "conn", c.serial)
	}

	if err := c.proto.Cancel(); err != nil {
		c.warn("async cancel request not sent", err)
		return cause
	}

	// Another round of async processing to drain the server's
	// acknowledgment. The status is re-entered as-is, not rewound to
	// StatusWrite. Stepping-world callers may have no callback registered;
	// fall back to backoff polling for them.
	var err error
	if Cooperative() {
		err = Wait(c)
	} else {
		err = BackoffWait(c)
	}
	if err != nil {
		c.warn("async cancel failed: closing the connection", err)
		c.proto.Close()
		return cause
	}

	// Drop the canceled command's result, or the next execution reports
	// another command already in progress.
	_, _ = c.proto.LastResult()
	return cause
}
