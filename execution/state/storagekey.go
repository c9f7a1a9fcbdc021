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

package state

import (
	"github.com/holiman/uint256"

	"github.com/quillchain/storageoverlay/common"
)

// storageKeyPrime is a large odd prime used to fold an address hash and a
// slot hash into a single map key, per the spec's hash(Address)*P ^
// hash(Slot) mixing rule.
const storageKeyPrime = 0xFFFFFFFFFFFFFFC5 // 2^64 - 59

// StorageKey identifies a single storage slot within a single account: the
// composite (Address, Slot) identity the journal indexes on. Two keys are
// equal iff both components are equal.
type StorageKey struct {
	Address common.Address
	Slot    uint256.Int
}

// NewStorageKey builds a StorageKey from an address and a 256-bit slot
// index.
func NewStorageKey(address common.Address, slot uint256.Int) StorageKey {
	return StorageKey{Address: address, Slot: slot}
}

// StorageKey's fields are both plain comparable arrays, so a StorageKey
// value is directly usable as a Go map key; the index below relies on
// that. Hash below exists for callers (such as property tests) that want
// a spec-shaped scalar digest instead.

// Hash folds both components of the key into a 64-bit digest, mixing the
// address and the slot with a large odd prime so that keys differing in
// either component land in different buckets.
func (k StorageKey) Hash() uint64 {
	var addrHash uint64
	for _, b := range k.Address {
		addrHash = addrHash*31 + uint64(b)
	}
	var slotHash uint64
	for _, w := range k.Slot {
		slotHash ^= w
	}
	return addrHash*storageKeyPrime ^ slotHash
}

// SlotBytes returns the big-endian 32-byte representation of the slot
// index, the encoding StorageTrie keys are built from.
func (k StorageKey) SlotBytes() []byte {
	b := k.Slot.Bytes32()
	return b[:]
}
