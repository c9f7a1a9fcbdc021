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

// trieRegistry is the lazy Address -> *trie.Trie map a Journal keeps for
// the lifetime of a block. A freshly opened trie always starts empty:
// trieOf never resolves an account's persisted root into trie nodes, so
// a Journal opened for a new block cannot read slots a prior Journal
// already committed for that address (see DESIGN.md for why this is
// accepted rather than fixed).
type trieRegistry struct {
	db   Database
	sp   StateProvider
	open map[common.Address]*trie.Trie
}

func newTrieRegistry(db Database, sp StateProvider) *trieRegistry {
	return &trieRegistry{
		db:   db,
		sp:   sp,
		open: make(map[common.Address]*trie.Trie),
	}
}

// trieOf returns the StorageTrie for address, opening it on first touch.
func (r *trieRegistry) trieOf(address common.Address) *trie.Trie {
	if t, ok := r.open[address]; ok {
		return t
	}
	store := r.db.OpenStorageDB(address)
	// The StateProvider's current root is discarded: this trie has no
	// decoder to resolve a root hash back into live nodes, so the new
	// Trie starts empty regardless of what StorageRootOf reports. A
	// Journal opened on a later block therefore cannot see storage a
	// prior Journal already committed for this address (see DESIGN.md).
	_ = r.sp.StorageRootOf(address)
	t := trie.New(store)
	r.open[address] = t
	return t
}

// reset drops every open trie handle. Called only by Journal.Reset.
func (r *trieRegistry) reset() {
	r.open = make(map[common.Address]*trie.Trie)
}
