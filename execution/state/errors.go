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
	"fmt"

	"github.com/quillchain/storageoverlay/common"
)

// InvalidSnapshotError is returned by Revert when the supplied SnapshotId
// is greater than the journal's current top. Fatal: the caller must abort
// the transaction rather than retry.
type InvalidSnapshotError struct {
	Snapshot SnapshotId
	Top      int
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("state: invalid snapshot %d (current top %d)", e.Snapshot, e.Top)
}

// JournalCorruptedError indicates an internal consistency check failed:
// a pop returned an unexpected index, a null lookahead guard was
// violated, or commit observed a null entry at top. It always signals an
// engine bug upstream of the journal, never a data problem.
type JournalCorruptedError struct {
	Reason string
}

func (e *JournalCorruptedError) Error() string {
	return fmt.Sprintf("state: journal corrupted: %s", e.Reason)
}

// BackingStoreError wraps a failure reported by the Database or
// StorageTrie node-store collaborator. It is surfaced unchanged to the
// enclosing block-processing loop, which decides whether to retry or
// halt.
type BackingStoreError struct {
	Address common.Address
	Err     error
}

func (e *BackingStoreError) Error() string {
	return fmt.Sprintf("state: backing store error for %x: %v", e.Address, e.Err)
}

func (e *BackingStoreError) Unwrap() error {
	return e.Err
}
