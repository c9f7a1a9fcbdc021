/*
   Copyright 2021 Erigon contributors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rlp

import "math/bits"

// StringLen returns the number of bytes EncodeString(s, ...) will write,
// without writing anything. Callers use it to size a destination buffer
// before calling EncodeString.
func StringLen(s []byte) int {
	switch {
	case len(s) >= 56:
		beLen := (bits.Len(uint(len(s))) + 7) / 8
		return 1 + beLen + len(s)
	case len(s) == 0:
		return 1
	case len(s) == 1:
		if s[0] >= 128 {
			return 2
		}
		return 1
	default: // 1<len(s)<56
		return 1 + len(s)
	}
}
