// Copyright 2014 The go-ethereum Authors
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

package trie

// node is the minimal hexary-radix-patricia-tree node set needed for a
// flat key (32-byte slot) -> value (<=32-byte) storage trie that is
// never resolved back from a hash: no account nodes, and no hashNode
// placeholder, since this Trie never reads a node back from NodeStore
// (see DESIGN.md for the consequence: a freshly opened Trie cannot see
// a previously committed, non-empty root).
type node interface{}

type (
	// fullNode is a branch with up to 16 nibble-indexed children plus an
	// optional value at index 16 (unused here since keys are fixed-length
	// slots and can never terminate exactly at a branch).
	fullNode struct {
		Children [17]node
	}

	// shortNode is either an extension (Val is a *fullNode) or a leaf
	// (Val is a valueNode), distinguished by whether Key ends in the
	// nibble terminator.
	shortNode struct {
		Key []byte // hex-encoded, not yet compacted
		Val node
	}

	// valueNode is a raw stored value (<=32 bytes, never empty: empty
	// values are represented by the slot's absence from the trie).
	valueNode []byte
)

func (n *fullNode) copy() *fullNode {
	cp := *n
	return &cp
}

func (n *shortNode) copy() *shortNode {
	cp := *n
	return &cp
}
