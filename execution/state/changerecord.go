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

// changeKind is a sum type over the two flavors of journal entry. It is
// a plain enum rather than an interface hierarchy so that the revert
// preservation rule can switch on the tag without any dynamic dispatch,
// the same discriminated-union shape erigon's own journal entries use.
type changeKind uint8

const (
	// kindMaterialized marks a read-through entry: a faithful image of
	// the on-disk slot at the time of first access. Safe and cheap to
	// keep alive across a revert.
	kindMaterialized changeKind = iota
	// kindUpdated marks a guest write. Its effect must be erased by any
	// revert that walks past it.
	kindUpdated
)

// changeRecord is an immutable journal entry. Once appended, none of its
// fields are mutated; a revert clears a slot by nulling it out, not by
// editing the record in place.
type changeRecord struct {
	kind  changeKind
	key   StorageKey
	value []byte
}
