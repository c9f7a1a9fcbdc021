// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package common

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// keccakState is a hash.Hash that also supports Read, used to pull the
// digest out without the extra copy Sum would otherwise require. Only
// the trie hasher and HashData below ever need a Keccak-256 digest of a
// byte slice, so the pool stays unexported: there's no StorageTrie use
// case for a caller-held streaming hasher.
type keccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

var keccakPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256().(keccakState)
	},
}

// HashData returns the Keccak-256 digest of data, the sole hashing
// primitive this module needs: trie node encodings (execution/trie) and
// nothing else ever get hashed.
func HashData(data []byte) (Hash, error) {
	h := keccakPool.Get().(keccakState)
	defer func() {
		h.Reset()
		keccakPool.Put(h)
	}()

	if _, err := h.Write(data); err != nil {
		return Hash{}, err
	}
	var buf Hash
	if _, err := h.Read(buf[:]); err != nil {
		return Hash{}, err
	}
	return buf, nil
}
