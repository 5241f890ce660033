// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/pkg/errors"
)

// loopbackCapacity is the bounded capacity of the command and result
// queues. 4 keeps the ring buffers within a single cache line.
const loopbackCapacity = 4

var errLoopbackClosed = errors.New("green: connection is closed")

// LoopbackServer is the server half of an in-memory connection pair:
// commands flow in over one bounded lock-free SPSC queue, results flow
// back over another. It exercises the whole execution path, including
// cancellation, without a database.
type LoopbackServer struct {
	cmdQ     lfq.SPSC[string]
	resQ     lfq.SPSC[Result]
	handler  func(command string) Result
	canceled atomix.Uint32
	closed   atomix.Uint32
	resSlot  Result
}

// loopbackProto is the client half: a Protocol over the shared queues.
// Send buffers the command; the first Poll flushes it (the write phase)
// and subsequent polls await the result (the read phase).
type loopbackProto struct {
	srv         *LoopbackServer
	pending     string
	flushed     bool
	cmdSlot     string
	res         Result
	last        *Result
	cancelArmed bool
}

// NewLoopback creates a connected connection/server pair. handler maps a
// command to its result; nil echoes the command text as the result tag.
//
// The server side is driven either from another goroutine (a loop over
// [LoopbackServer.Step]) or on the calling goroutine via
// [LoopbackServer.Wait] registered as the wait callback.
func NewLoopback(handler func(command string) Result) (*Conn, *LoopbackServer) {
	if handler == nil {
		handler = func(command string) Result { return Result{Tag: command} }
	}
	srv := &LoopbackServer{handler: handler}
	srv.cmdQ.Init(loopbackCapacity)
	srv.resQ.Init(loopbackCapacity)
	return NewConn(&loopbackProto{srv: srv, flushed: true}), srv
}

// Step services one pending command: dequeue, run the handler, enqueue
// the result. A command serviced after a cancel request acknowledges the
// cancellation instead of answering. Returns iox.ErrWouldBlock when no
// command is waiting.
func (s *LoopbackServer) Step() error {
	cmd, err := s.cmdQ.Dequeue()
	if err != nil {
		return err
	}
	res := s.handler(cmd)
	if s.canceled.Load() != 0 {
		s.canceled.Store(0)
		res = Result{Tag: "canceled"}
	}
	s.resSlot = res
	var bo iox.Backoff
	for s.resQ.Enqueue(&s.resSlot) != nil {
		bo.Wait()
	}
	return nil
}

// Wait is a [WaitFunc] that services the server side while polling the
// client side on the same goroutine, backing off when neither can make
// progress. Registering it makes [Exec] usable single-threaded.
func (s *LoopbackServer) Wait(c *Conn) error {
	var bo iox.Backoff
	for {
		progress := s.Step() == nil
		err := c.Poll()
		if err == nil {
			return nil
		}
		if err != iox.ErrWouldBlock {
			return err
		}
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

func (p *loopbackProto) Send(command string) error {
	if p.srv.closed.Load() != 0 {
		return errLoopbackClosed
	}
	p.pending = command
	p.flushed = false
	p.last = nil
	return nil
}

func (p *loopbackProto) Poll() (Status, error) {
	if p.srv.closed.Load() != 0 {
		return StatusDone, errLoopbackClosed
	}
	if !p.flushed {
		p.cmdSlot = p.pending
		if err := p.srv.cmdQ.Enqueue(&p.cmdSlot); err != nil {
			return StatusWrite, err
		}
		p.flushed = true
	}
	v, err := p.srv.resQ.Dequeue()
	if err != nil {
		return StatusRead, err
	}
	// A dequeued result resolves any armed cancellation: it is either the
	// server's acknowledgment, or an answer produced before the request
	// arrived. Disarm so the flag cannot leak into the next execution.
	if p.cancelArmed {
		p.srv.canceled.Store(0)
		p.cancelArmed = false
	}
	p.res = v
	p.last = &p.res
	return StatusDone, nil
}

// LastResult takes the result of the completed exchange, or nil when none
// is pending.
func (p *loopbackProto) LastResult() (*Result, error) {
	res := p.last
	p.last = nil
	return res, nil
}

func (p *loopbackProto) Cancel() error {
	if p.srv.closed.Load() != 0 {
		return errLoopbackClosed
	}
	p.srv.canceled.Store(1)
	p.cancelArmed = true
	return nil
}

func (p *loopbackProto) Close() {
	p.srv.closed.Store(1)
}
