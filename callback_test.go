// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green_test

import (
	"testing"

	"github.com/pkg/errors"

	"code.hybscloud.com/green"
)

func TestSetWaitCallbackLastWins(t *testing.T) {
	errFirst := errors.New("first")
	errSecond := errors.New("second")
	withCallback(t, func(*green.Conn) error { return errFirst })
	green.SetWaitCallback(func(*green.Conn) error { return errSecond })

	c := green.NewConn(&scriptConn{})
	if err := green.Wait(c); err != errSecond {
		t.Fatalf("got %v, want %v", err, errSecond)
	}
}

func TestSetWaitCallbackNilIdempotent(t *testing.T) {
	withCallback(t, func(*green.Conn) error { return nil })
	green.SetWaitCallback(nil)
	if green.Cooperative() {
		t.Fatal("cooperative after clearing the callback")
	}
	green.SetWaitCallback(nil)
	if green.Cooperative() {
		t.Fatal("cooperative after clearing the callback twice")
	}
}

func TestCooperative(t *testing.T) {
	if green.Cooperative() {
		t.Fatal("cooperative with no callback registered")
	}
	withCallback(t, func(*green.Conn) error { return nil })
	if !green.Cooperative() {
		t.Fatal("not cooperative with a callback registered")
	}
}

func TestWaitNoCallback(t *testing.T) {
	c := green.NewConn(&scriptConn{})
	if err := green.Wait(c); err != green.ErrCallbackUnavailable {
		t.Fatalf("got %v, want ErrCallbackUnavailable", err)
	}
}

func TestWaitPropagatesVerbatim(t *testing.T) {
	errSched := errors.New("scheduler interrupted")
	withCallback(t, func(*green.Conn) error { return errSched })

	c := green.NewConn(&scriptConn{})
	if err := green.Wait(c); err != errSched {
		t.Fatalf("got %v, want the callback's error unwrapped", err)
	}
}

func TestWaitReceivesConn(t *testing.T) {
	c := green.NewConn(&scriptConn{})
	var got *green.Conn
	withCallback(t, func(arg *green.Conn) error {
		got = arg
		return nil
	})
	if err := green.Wait(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != c {
		t.Fatal("callback invoked with a different conn")
	}
}
