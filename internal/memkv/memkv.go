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

// Package memkv is a reference, in-memory implementation of the storage
// journal's Database and StateProvider collaborators, suitable for
// demos and tests that need a real (if throwaway) backing store rather
// than a hand-rolled mock.
package memkv

import (
	"sync"

	"github.com/quillchain/storageoverlay/common"
	"github.com/quillchain/storageoverlay/execution/trie"
)

// NodeStore is a process-local, lock-protected map[Hash][]byte, the
// simplest possible trie.NodeStore.
type NodeStore struct {
	lock  sync.RWMutex
	nodes map[common.Hash][]byte
}

func newNodeStore() *NodeStore {
	return &NodeStore{nodes: make(map[common.Hash][]byte)}
}

func (s *NodeStore) Put(hash common.Hash, encoded []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.nodes[hash] = append([]byte{}, encoded...)
	return nil
}

// Get returns the raw node bytes previously Put under hash, for callers
// (diagnostics, tests) that want to inspect the node set directly. Not
// part of trie.NodeStore; the trie itself never calls this.
func (s *NodeStore) Get(hash common.Hash) ([]byte, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.nodes[hash]
	return v, ok
}

// Database is an in-memory Database collaborator: it hands out one
// NodeStore per address, created on first request and memoized for the
// lifetime of the process.
type Database struct {
	lock  sync.Mutex
	stores map[common.Address]*NodeStore
}

// NewDatabase returns an empty in-memory Database.
func NewDatabase() *Database {
	return &Database{stores: make(map[common.Address]*NodeStore)}
}

func (d *Database) OpenStorageDB(address common.Address) trie.NodeStore {
	d.lock.Lock()
	defer d.lock.Unlock()
	if s, ok := d.stores[address]; ok {
		return s
	}
	s := newNodeStore()
	d.stores[address] = s
	return s
}

// StateProvider is an in-memory StateProvider collaborator: a set of
// known-existing addresses and a map of published storage roots.
type StateProvider struct {
	lock    sync.RWMutex
	exists  map[common.Address]bool
	roots   map[common.Address]common.Hash
}

// NewStateProvider returns a StateProvider where every address is
// presumed to exist until explicitly marked absent via Destroy.
func NewStateProvider() *StateProvider {
	return &StateProvider{
		exists: make(map[common.Address]bool),
		roots:  make(map[common.Address]common.Hash),
	}
}

// CreateAccount marks address as existing, the way a genesis allocation
// or a CREATE opcode would.
func (p *StateProvider) CreateAccount(address common.Address) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.exists[address] = true
}

// Destroy marks address as no longer existing, the way a SELFDESTRUCT
// would, so that a subsequent commit skips its root update per the
// journal's EIP-161-class rule.
func (p *StateProvider) Destroy(address common.Address) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.exists[address] = false
}

func (p *StateProvider) AccountExists(address common.Address) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	exists, known := p.exists[address]
	if !known {
		return true
	}
	return exists
}

func (p *StateProvider) StorageRootOf(address common.Address) common.Hash {
	p.lock.RLock()
	defer p.lock.RUnlock()
	if r, ok := p.roots[address]; ok {
		return r
	}
	return trie.EmptyRootHash
}

func (p *StateProvider) UpdateStorageRoot(address common.Address, root common.Hash) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.roots[address] = root
}
