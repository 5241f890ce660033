// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package green lets a blocking-style database command run under a
// cooperative scheduler: instead of blocking the whole process on socket
// I/O, the execution suspends through an externally registered wait
// callback while the wire exchange is pending, and recovers via a
// protocol-level cancellation handshake when that suspension fails
// mid-query.
//
// # Architecture
//
//   - Wire collaborator: [Protocol] sends a command, advances the exchange
//     non-blocking ([Protocol.Poll] returns [code.hybscloud.com/iox.ErrWouldBlock]
//     while the socket is not ready), fetches the final result, and issues
//     cancel/close.
//   - Suspension: the readiness wait is a single effect on
//     [code.hybscloud.com/kont]; the registered [WaitFunc] is the only
//     point where control leaves this package.
//   - Execution: dual-world API. [Exec] blocks through the wait callback;
//     [Submit] and [Advance] step the same protocol one non-blocking poll
//     at a time for event-loop integrations.
//   - Recovery: a failed wait triggers one bounded cancellation
//     round-trip; if draining the acknowledgment fails too, the connection
//     is closed. The triggering error is always the one surfaced; recovery
//     failures are attached to the connection as warnings and emitted via
//     [SetLogger].
//
// # Integration
//
//   - Register once per process: [SetWaitCallback] at scheduler start-up,
//     [Cooperative] to test whether the cooperative path is active.
//   - [BackoffWait] is a ready-made [WaitFunc] that polls under adaptive
//     backoff ([code.hybscloud.com/iox.Backoff]) for hosts without a
//     scheduler.
//   - [NewLoopback] wires a connection to an in-memory server half over
//     bounded lock-free queues ([code.hybscloud.com/lfq]) for tests and
//     examples.
//
// # Example
//
//	conn, srv := green.NewLoopback(nil)
//	green.SetWaitCallback(srv.Wait)
//	res, err := green.Exec(conn, "SELECT 1")
package green
