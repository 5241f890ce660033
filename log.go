// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import (
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	loggerMu sync.RWMutex
	logger   log.Logger = log.NewNopLogger()
)

// SetLogger routes this package's warnings to l. The default discards
// them. Passing nil restores the default.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func logWarn(keyvals ...interface{}) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	_ = level.Warn(l).Log(keyvals...)
}
