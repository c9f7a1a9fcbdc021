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
	"github.com/quillchain/storageoverlay/common"
	"github.com/quillchain/storageoverlay/execution/trie"
)

// rootUpdate records a single UpdateStorageRoot call observed by
// mockStateProvider, in call order.
type rootUpdate struct {
	address common.Address
	root    common.Hash
}

// mockStateProvider is a StateProvider test double that records every
// UpdateStorageRoot call and lets tests control account existence and
// initial storage roots per address.
type mockStateProvider struct {
	nonexistent map[common.Address]bool
	roots       map[common.Address]common.Hash
	updates     []rootUpdate
}

func newMockStateProvider() *mockStateProvider {
	return &mockStateProvider{
		nonexistent: make(map[common.Address]bool),
		roots:       make(map[common.Address]common.Hash),
	}
}

func (m *mockStateProvider) AccountExists(address common.Address) bool {
	return !m.nonexistent[address]
}

func (m *mockStateProvider) StorageRootOf(address common.Address) common.Hash {
	if r, ok := m.roots[address]; ok {
		return r
	}
	return trie.EmptyRootHash
}

func (m *mockStateProvider) UpdateStorageRoot(address common.Address, root common.Hash) {
	m.updates = append(m.updates, rootUpdate{address: address, root: root})
}

func (m *mockStateProvider) setNonexistent(address common.Address) {
	m.nonexistent[address] = true
}

// countingNodeStore wraps an in-memory NodeStore and counts Put calls.
// No test asserts on the count; read-through preservation is checked
// through Journal.Len instead.
type countingNodeStore struct {
	puts  int
	nodes map[common.Hash][]byte
}

func newCountingNodeStore() *countingNodeStore {
	return &countingNodeStore{nodes: make(map[common.Hash][]byte)}
}

func (c *countingNodeStore) Put(hash common.Hash, encoded []byte) error {
	c.puts++
	c.nodes[hash] = append([]byte{}, encoded...)
	return nil
}

// mockDatabase hands out one countingNodeStore per address, memoized.
type mockDatabase struct {
	stores map[common.Address]*countingNodeStore
}

func newMockDatabase() *mockDatabase {
	return &mockDatabase{stores: make(map[common.Address]*countingNodeStore)}
}

func (d *mockDatabase) OpenStorageDB(address common.Address) trie.NodeStore {
	if s, ok := d.stores[address]; ok {
		return s
	}
	s := newCountingNodeStore()
	d.stores[address] = s
	return s
}

func (d *mockDatabase) storeOf(address common.Address) *countingNodeStore {
	return d.stores[address]
}

func addr(b byte) common.Address {
	var a common.Address
	a[19] = b
	return a
}
