// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import "github.com/pkg/errors"

var (
	// ErrCallbackUnavailable is returned when the cooperative path is
	// taken but no wait callback is registered. Never retried.
	ErrCallbackUnavailable = errors.New("green: wait callback not available")

	// ErrConcurrentQuery is returned when an execution is started on a
	// connection that already has one in flight. The connection's state is
	// left untouched.
	ErrConcurrentQuery = errors.New("green: a single async query can be executed on the same connection")
)
