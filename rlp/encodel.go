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

// Package rlp implements the low-level RLP (Recursive Length Prefix)
// string and list prefix encoders that execution/trie's node hasher
// needs to build a node's canonical byte encoding before hashing it.
// There is no decoder here and no integer/hash-list encoders: this
// module never parses RLP back off the wire, and never encodes anything
// but trie node bodies (byte strings and lists of references).
package rlp

import (
	"encoding/binary"
	"math/bits"
)

// Callers must size `to` themselves (via ListPrefixLen/StringLen) before
// calling the matching Encode function; this package never allocates.

// ListPrefixLen returns the number of prefix bytes EncodeListPrefix will
// write for a list body of dataLen bytes.
func ListPrefixLen(dataLen int) int {
	if dataLen >= 56 {
		return 1 + (bits.Len64(uint64(dataLen))+7)/8
	}
	return 1
}

// EncodeListPrefix writes the RLP list prefix for a body of dataLen
// bytes into to and returns the number of bytes written. The body itself
// is not written; callers append it after the prefix.
func EncodeListPrefix(dataLen int, to []byte) int {
	if dataLen >= 56 {
		_ = to[9]
		beLen := (bits.Len64(uint64(dataLen)) + 7) / 8
		binary.BigEndian.PutUint64(to[1:], uint64(dataLen))
		to[8-beLen] = 247 + byte(beLen)
		copy(to, to[8-beLen:9])
		return 1 + beLen
	}
	to[0] = 192 + byte(dataLen)
	return 1
}

// EncodeString writes the RLP string encoding of s into to, which must
// be exactly StringLen(s) bytes long.
func EncodeString(s []byte, to []byte) {
	switch {
	case len(s) >= 56:
		beLen := (bits.Len(uint(len(s))) + 7) / 8
		binary.BigEndian.PutUint64(to[1:], uint64(len(s)))
		_ = to[beLen+len(s)]

		to[8-beLen] = byte(beLen) + 183
		copy(to, to[8-beLen:9])
		copy(to[1+beLen:], s)
	case len(s) == 0:
		to[0] = 128
	case len(s) == 1:
		if s[0] >= 128 {
			_ = to[1]
			to[0] = 129
			to[1] = s[0]
		} else {
			to[0] = s[0]
		}
	default: // 1<len(s)<56
		_ = to[len(s)]
		to[0] = byte(len(s)) + 128
		copy(to[1:], s)
	}
}

// EncodeHash writes the RLP string encoding of a 32-byte hash into to,
// which must be at least 33 bytes long, and returns the number of bytes
// written (always 33).
func EncodeHash(h, to []byte) int {
	_ = to[32] // early bounds check to guarantee safety of writes below
	to[0] = 128 + 32
	copy(to[1:33], h[:32])
	return 33
}
