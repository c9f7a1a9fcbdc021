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

// StateProvider is the parent-state collaborator the journal reports
// storage-root changes to during commit. The journal embeds no knowledge
// of how accounts are stored beyond this interface.
type StateProvider interface {
	// AccountExists reports whether address currently has an account.
	// Consulted only during commit, to skip publishing a root update for
	// an account that self-destructed after being written to.
	AccountExists(address common.Address) bool

	// StorageRootOf returns the current storage root for address, used
	// as the initial root when a StorageTrie is lazily opened.
	StorageRootOf(address common.Address) common.Hash

	// UpdateStorageRoot publishes a new storage root for address. Called
	// at most once per address per commit; must be idempotent and
	// order-independent across addresses within a single commit.
	UpdateStorageRoot(address common.Address, root common.Hash)
}

// Database is the persistence collaborator that hands out per-account
// node-storage handles for StorageTrie.
type Database interface {
	// OpenStorageDB returns a handle usable by a StorageTrie for node
	// persistence. Idempotent per address within a process lifetime.
	OpenStorageDB(address common.Address) trie.NodeStore
}
