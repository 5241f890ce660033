// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import (
	"code.hybscloud.com/atomix"
	"github.com/pkg/errors"
)

// Status is the phase of a connection's asynchronous wire exchange.
// It is meaningful only while the busy token is set; every execution
// forces it to StatusDone on exit, success or failure.
type Status uint32

const (
	// StatusIdle means no asynchronous exchange has been started.
	StatusIdle Status = iota
	// StatusWrite means the command is being flushed to the socket.
	StatusWrite
	// StatusRead means the result is being awaited from the socket.
	StatusRead
	// StatusDone means the exchange has completed.
	StatusDone
)

// Protocol is the wire-protocol collaborator behind a [Conn]. This package
// does not implement the wire protocol; it coordinates one at a time.
//
// Poll is non-blocking: it advances the exchange as far as possible and
// returns the phase the exchange is in, with
// [code.hybscloud.com/iox.ErrWouldBlock] (unwrapped) while the socket must
// become ready for that phase, nil once the exchange completed
// (StatusDone), or a connection failure. LastResult is valid, without
// blocking, once Poll has signaled completion. Cancel issues a cancel
// request through the connection's cancel handle, assumed valid once the
// connection is established. Close is destructive and connection-wide.
type Protocol interface {
	Send(command string) error
	Poll() (Status, error)
	LastResult() (*Result, error)
	Cancel() error
	Close()
}

// Result is the protocol result of a completed command.
type Result struct {
	Tag string
}

// Conn couples a wire-protocol connection with the coordination state of
// at most one in-flight asynchronous command. The busy token brackets the
// command's lifetime exactly: non-zero from the moment an execution claims
// the connection until its unconditional cleanup.
//
// A Conn is not safe for truly parallel use; callers hold whatever
// per-connection discipline the surrounding system requires before
// entering an execution.
type Conn struct {
	proto    Protocol
	serial   Serial
	status   Status
	busy     atomix.Uint32
	warnings []error
}

// NewConn wraps p for cooperative executions.
func NewConn(p Protocol) *Conn {
	return &Conn{proto: p, serial: nextSerial()}
}

// Serial returns the serial number assigned to this connection.
func (c *Conn) Serial() Serial {
	return c.serial
}

// Status returns the current phase of the asynchronous exchange.
func (c *Conn) Status() Status {
	return c.status
}

// Busy reports whether an asynchronous command is in flight.
func (c *Conn) Busy() bool {
	return c.busy.Load() != 0
}

// Poll advances the pending wire exchange by one non-blocking step and
// records the phase reported by the collaborator. The collaborator owns
// the StatusWrite to StatusRead transition; this package only forces
// StatusDone at cleanup.
func (c *Conn) Poll() error {
	st, err := c.proto.Poll()
	c.status = st
	return err
}

// Warnings returns the recovery-path warnings attached to the most recent
// execution. They never replace the execution's primary error. The
// returned slice is the caller's to keep: it stays valid across later
// executions.
func (c *Conn) Warnings() []error {
	if len(c.warnings) == 0 {
		return nil
	}
	out := make([]error, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// begin claims the connection for one execution: the busy precondition
// check and a fresh token, minted from the serial counter. The token's
// identity is irrelevant, only its presence matters.
func (c *Conn) begin() error {
	if !c.busy.CompareAndSwap(0, nextSerial()) {
		return ErrConcurrentQuery
	}
	c.warnings = c.warnings[:0]
	return nil
}

// finish is the unconditional cleanup of an execution: the exchange is
// marked done and the busy token cleared, so a failed execution never
// leaves the connection appearing still busy.
func (c *Conn) finish() {
	c.status = StatusDone
	c.busy.Store(0)
}

// warn attaches a recovery-path warning to the current execution and
// emits it through the package logger.
func (c *Conn) warn(msg string, cause error) {
	c.warnings = append(c.warnings, errors.Wrap(cause, msg))
	logWarn("msg", msg, "conn", c.serial, "err", cause)
}
