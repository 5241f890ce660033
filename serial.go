// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package green

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing identifier. Each connection is
// assigned one at construction; busy tokens are minted from the same
// counter, so a token's value never collides with zero (the idle state).
type Serial = uint32

// counter is the global monotonic counter for serials and busy tokens.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
