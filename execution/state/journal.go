// Copyright 2016 The go-ethereum Authors
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

// Package state implements the transactional per-account storage
// journal: an in-memory, snapshot-capable, copy-on-write overlay over a
// content-addressed per-account storage trie (package trie), matching
// the EVM SSTORE/SLOAD/revert model.
package state

import (
	"github.com/holiman/uint256"

	"github.com/quillchain/storageoverlay/common"
)

// SnapshotId is an opaque integer representing a point-in-time journal
// cursor, as returned by Journal.Snapshot.
type SnapshotId int

// initialJournalCapacity is the recommended starting size of the changes
// buffer (Section 4.2.2).
const initialJournalCapacity = 1024

// Journal is an append-only vector of changeRecords plus a per-key stack
// of indices into that vector. It is the sole read/write path the VM
// executor uses during a block; it is not safe for concurrent use (see
// Section 5: single-threaded cooperative scheduling).
type Journal struct {
	changes []*changeRecord // changes[i] is nil once reverted away
	top     int             // index of the most recently appended record; -1 means empty
	index   map[StorageKey][]int

	tries *trieRegistry
	sp    StateProvider
}

// NewJournal returns an empty journal backed by db and sp. db supplies
// per-account node storage; sp supplies and receives storage roots.
func NewJournal(db Database, sp StateProvider) *Journal {
	return &Journal{
		changes: make([]*changeRecord, initialJournalCapacity),
		top:     -1,
		index:   make(map[StorageKey][]int),
		tries:   newTrieRegistry(db, sp),
		sp:      sp,
	}
}

// Len returns the number of addressable entries, top+1. Empty when 0.
func (j *Journal) Len() int {
	return j.top + 1
}

// growIfNeeded doubles the backing buffer once top reaches capacity-2,
// so that changes[top+1] always stays addressable as the lookahead guard
// consulted by Commit and Revert (Section 4.2.2).
func (j *Journal) growIfNeeded() {
	if j.top >= len(j.changes)-2 {
		grown := make([]*changeRecord, len(j.changes)*2)
		copy(grown, j.changes)
		j.changes = grown
	}
}

// append appends r as a new top-of-journal entry and pushes its index
// onto index[r.key], returning the new index.
func (j *Journal) append(r *changeRecord) int {
	j.growIfNeeded()
	j.top++
	j.changes[j.top] = r
	j.index[r.key] = append(j.index[r.key], j.top)
	return j.top
}

// Get returns the current value of (address, slot). If a prior entry for
// this key exists, its top-of-stack value is returned without touching
// the trie. Otherwise the account's StorageTrie is read through, the
// result is recorded as a Materialized entry, and the value is returned.
func (j *Journal) Get(address common.Address, slot uint256.Int) []byte {
	key := NewStorageKey(address, slot)
	if stack := j.index[key]; len(stack) > 0 {
		return j.changes[stack[len(stack)-1]].value
	}
	value := j.tries.trieOf(address).Get(key.SlotBytes())
	j.append(&changeRecord{kind: kindMaterialized, key: key, value: value})
	return value
}

// Set appends an Updated record for (address, slot) with the given
// value. It never first materializes the prior value.
func (j *Journal) Set(address common.Address, slot uint256.Int, value []byte) {
	key := NewStorageKey(address, slot)
	j.append(&changeRecord{kind: kindUpdated, key: key, value: value})
}

// Snapshot returns the current journal cursor.
func (j *Journal) Snapshot() SnapshotId {
	return SnapshotId(j.top)
}

// Revert rolls the journal back to snap, preserving read-through
// (Materialized) entries that were the sole entry for their key at the
// time they were walked over, per the spec's preservation rule.
func (j *Journal) Revert(snap SnapshotId) error {
	if int(snap) > j.top {
		return &InvalidSnapshotError{Snapshot: snap, Top: j.top}
	}

	var preserved []*changeRecord
	for i := j.top; i > int(snap); i-- {
		r := j.changes[i]
		if r == nil {
			return &JournalCorruptedError{Reason: "revert encountered a null entry above snap"}
		}
		stack := j.index[r.key]
		if len(stack) == 0 {
			return &JournalCorruptedError{Reason: "revert found an entry with an empty index stack"}
		}
		top := stack[len(stack)-1]

		if len(stack) == 1 && r.kind == kindMaterialized {
			// Preservation rule: the sole, read-through entry for this
			// key. Pop it, stash it for re-append, null the slot.
			delete(j.index, r.key)
			preserved = append(preserved, r)
			j.changes[i] = nil
			continue
		}

		// Normal rule.
		if top != i {
			return &JournalCorruptedError{Reason: "revert popped an index that does not match the walked position"}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			delete(j.index, r.key)
		} else {
			j.index[r.key] = stack
		}
		j.changes[i] = nil
	}

	j.top = int(snap)

	// Re-append preserved records in the order encountered by the
	// reverse walk, i.e. newest-to-oldest (Section 9's resolved Open
	// Question (a)).
	for _, r := range preserved {
		j.append(r)
	}

	return nil
}

// Commit finalizes the journal into the StorageTries and the
// StateProvider: the newest write per key is applied, batched per
// account, and each touched account's new root hash is published.
func (j *Journal) Commit() error {
	if j.top == -1 {
		return nil
	}
	if j.changes[j.top] == nil {
		return &JournalCorruptedError{Reason: "commit found a null entry at top"}
	}
	if j.top+1 < len(j.changes) && j.changes[j.top+1] != nil {
		return &JournalCorruptedError{Reason: "commit found a non-null lookahead guard"}
	}

	seen := make(map[StorageKey]struct{})
	touched := make(map[common.Address]struct{})

	for i := j.top; i >= 0; i-- {
		r := j.changes[i]
		if r == nil {
			return &JournalCorruptedError{Reason: "commit encountered a null entry below top"}
		}
		if _, ok := seen[r.key]; ok {
			continue // shadowed by a newer record
		}

		stack := j.index[r.key]
		if len(stack) == 0 || stack[len(stack)-1] != i {
			return &JournalCorruptedError{Reason: "commit found an index mismatch while popping"}
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			delete(j.index, r.key)
		} else {
			j.index[r.key] = stack
		}

		seen[r.key] = struct{}{}
		touched[r.key.Address] = struct{}{}

		if r.kind == kindUpdated {
			if err := j.tries.trieOf(r.key.Address).Set(r.key.SlotBytes(), r.value); err != nil {
				return &BackingStoreError{Address: r.key.Address, Err: err}
			}
		}
	}

	for address := range touched {
		if !j.sp.AccountExists(address) {
			continue // self-destructed after write: skip per EIP-161-class rules
		}
		root, err := j.tries.trieOf(address).RootHash()
		if err != nil {
			return &BackingStoreError{Address: address, Err: err}
		}
		j.sp.UpdateStorageRoot(address, root)
	}

	j.clear()
	return nil
}

// Reset clears every journal structure and drops all StorageTrie
// handles. Used between unrelated transactions.
func (j *Journal) Reset() {
	j.clear()
	j.tries.reset()
}

// clear resets the changes buffer, index, and top without touching open
// trie handles; shared by Commit and Reset.
func (j *Journal) clear() {
	j.changes = make([]*changeRecord, initialJournalCapacity)
	j.top = -1
	j.index = make(map[StorageKey][]int)
}

// StorageRoot is a read-through to the lazily opened trie for address,
// used by the executor for debugging and receipt construction.
func (j *Journal) StorageRoot(address common.Address) (common.Hash, error) {
	root, err := j.tries.trieOf(address).RootHash()
	if err != nil {
		return common.Hash{}, &BackingStoreError{Address: address, Err: err}
	}
	return root, nil
}
