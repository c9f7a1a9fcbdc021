// Copyright 2015 The go-ethereum Authors
// (original work)
// Copyright 2024 The Erigon Authors
// (modifications)
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

// Package common holds the wire-level identifiers shared by the storage
// journal and its trie: 20-byte account addresses and 32-byte hashes.
package common

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Lengths of addresses and hashes in bytes.
const (
	AddressLength = 20
	HashLength    = 32
)

// Address identifies an externally addressable account.
type Address [AddressLength]byte

// BytesToAddress right-aligns b into an Address, truncating from the left
// if b is longer than AddressLength.
func BytesToAddress(b []byte) (a Address) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress interprets s as a hex string (with or without 0x prefix)
// and returns the resulting Address.
func HexToAddress(s string) Address {
	return BytesToAddress(FromHex(s))
}

func (a Address) Bytes() []byte { return a[:] }

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Addresses is a slice of Address, implementing sort.Interface.
type Addresses []Address

func (addrs Addresses) Len() int      { return len(addrs) }
func (addrs Addresses) Swap(i, j int) { addrs[i], addrs[j] = addrs[j], addrs[i] }
func (addrs Addresses) Less(i, j int) bool {
	return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
}

// Hash is a 32-byte value: a trie root commitment, or the canonical
// big-endian encoding of a 256-bit storage slot index.
type Hash [HashLength]byte

func BytesToHash(b []byte) (h Hash) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

func HexToHash(s string) Hash {
	return BytesToHash(FromHex(s))
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Hashes is a slice of Hash, implementing sort.Interface.
type Hashes []Hash

func (hashes Hashes) Len() int      { return len(hashes) }
func (hashes Hashes) Swap(i, j int) { hashes[i], hashes[j] = hashes[j], hashes[i] }
func (hashes Hashes) Less(i, j int) bool {
	return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
}

// FromHex decodes a hex string, tolerating an optional 0x/0X prefix and an
// odd number of digits.
func FromHex(s string) []byte {
	if len(s) >= 2 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("common: invalid hex string %q: %v", s, err))
	}
	return b
}
