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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/quillchain/storageoverlay/common"
)

func slot(n uint64) uint256.Int {
	var s uint256.Int
	s.SetUint64(n)
	return s
}

// S1: revert restores a materialized-then-updated slot to its
// snapshot-time value, and commit writes exactly the surviving value.
// The StorageTrie handle is retained across Commit (only the journal
// proper is cleared), so reading back through the same Journal exercises
// the committed trie content rather than the in-memory write cache.
func TestScenarioS1(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	require.Equal(t, []byte(nil), j.Get(A, slot(7)))
	j.Set(A, slot(7), []byte{0x2A})
	snap := j.Snapshot()
	j.Set(A, slot(7), []byte{0x2B})
	require.NoError(t, j.Revert(snap))
	require.Equal(t, []byte{0x2A}, j.Get(A, slot(7)))

	require.NoError(t, j.Commit())
	require.Equal(t, []byte{0x2A}, j.Get(A, slot(7)))
	require.Len(t, sp.updates, 1)
	require.Equal(t, A, sp.updates[0].address)
}

// S2: three writes to the same key collapse to a single trie.Set with
// the last value.
func TestScenarioS2(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	j.Set(A, slot(1), []byte{0x01})
	j.Set(A, slot(1), []byte{0x02})
	j.Set(A, slot(1), []byte{0x03})
	require.NoError(t, j.Commit())

	require.Equal(t, []byte{0x03}, j.Get(A, slot(1)))
}

// S3: nested snapshots preserve read-through caches with no additional
// trie touch, observable as the journal length after each post-revert
// Get equalling the number of entries that revert left in place.
func TestScenarioS3(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	require.Equal(t, []byte(nil), j.Get(A, slot(9)))
	lenAfterFirstGet := j.Len()

	snap1 := j.Snapshot()
	j.Set(A, slot(9), []byte{0xFF})
	snap2 := j.Snapshot()
	j.Set(A, slot(9), []byte{0xEE})

	require.NoError(t, j.Revert(snap2))
	require.Equal(t, []byte{0xFF}, j.Get(A, slot(9)))
	lenAfterSnap2Revert := j.Len()

	require.NoError(t, j.Revert(snap1))
	require.Equal(t, []byte(nil), j.Get(A, slot(9)))
	lenAfterSnap1Revert := j.Len()

	// Neither Get appended a new Materialized entry: after revert(snap2)
	// the journal holds the first Get's entry plus the surviving 0xFF
	// write, and after revert(snap1) only the first Get's entry.
	require.Equal(t, lenAfterFirstGet+1, lenAfterSnap2Revert)
	require.Equal(t, lenAfterFirstGet, lenAfterSnap1Revert)
}

// S4: two accounts, each with one write, each get exactly one root
// update, both matching their own RootHash.
func TestScenarioS4(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A, B := addr(1), addr(2)

	j.Set(A, slot(1), []byte{0x01})
	j.Set(B, slot(1), []byte{0x02})
	require.NoError(t, j.Commit())

	rootA, err := j.StorageRoot(A)
	require.NoError(t, err)
	rootB, err := j.StorageRoot(B)
	require.NoError(t, err)

	require.Len(t, sp.updates, 2)
	seen := map[common.Address]common.Hash{}
	for _, u := range sp.updates {
		seen[u.address] = u.root
	}
	require.Equal(t, rootA, seen[A])
	require.Equal(t, rootB, seen[B])
}

// S5: a write to an account that no longer exists at commit time still
// reaches the trie, but no root update is published.
func TestScenarioS5(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	j.Set(A, slot(3), []byte{0xAB})
	sp.setNonexistent(A)
	require.NoError(t, j.Commit())

	require.Empty(t, sp.updates)
	require.Equal(t, []byte{0xAB}, j.Get(A, slot(3)))
}

// S6: reverting past the current top is InvalidSnapshot and changes
// nothing.
func TestScenarioS6(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	j.Set(A, slot(1), []byte{0x01})
	top := j.Snapshot()

	err := j.Revert(SnapshotId(int(top) + 1))
	require.Error(t, err)
	require.IsType(t, &InvalidSnapshotError{}, err)
	require.Equal(t, top, j.Snapshot())
	require.Equal(t, []byte{0x01}, j.Get(A, slot(1)))
}

func TestZeroDeleteRoundTrip(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	rootBefore, err := j.StorageRoot(A)
	require.NoError(t, err)

	j.Set(A, slot(5), []byte{0x42})
	require.NoError(t, j.Commit())
	require.Equal(t, []byte{0x42}, j.Get(A, slot(5)))

	j.Set(A, slot(5), []byte{})
	require.NoError(t, j.Commit())
	require.Equal(t, []byte(nil), j.Get(A, slot(5)))
	rootAfter, err := j.StorageRoot(A)
	require.NoError(t, err)
	require.Equal(t, rootBefore, rootAfter)
}

func TestCommitEmptyJournalIsNoop(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	require.NoError(t, j.Commit())
	require.Empty(t, sp.updates)
}

func TestResetDropsTrieHandles(t *testing.T) {
	db := newMockDatabase()
	sp := newMockStateProvider()
	j := NewJournal(db, sp)
	A := addr(1)

	j.Set(A, slot(1), []byte{0x01})
	j.Reset()

	require.Equal(t, -1, j.top)
	require.Equal(t, []byte(nil), j.Get(A, slot(1)))
}
