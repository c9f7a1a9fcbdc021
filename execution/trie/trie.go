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

// Package trie implements the per-account content-addressed radix trie
// (Section 4.1 of the storage journal spec): a map from 256-bit slot keys
// to byte strings of up to 32 bytes, with a deterministic Keccak-256
// root commitment that agrees with the canonical Ethereum Merkle-Patricia
// encoding for the same key/value multiset.
package trie

import (
	"fmt"

	"github.com/quillchain/storageoverlay/common"
)

// EmptyRootHash is the Keccak-256 hash of the RLP encoding of an empty
// trie (RLP of the empty string, 0x80).
var EmptyRootHash = common.HexToHash("56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421")

// Trie is a Merkle-Patricia trie mapping 32-byte keys to byte values.
// It is not safe for concurrent use; the journal that owns an instance
// guarantees single-threaded access (Section 5 of the spec).
type Trie struct {
	root node
	db   NodeStore
}

// NodeStore is the persistence collaborator a Trie writes its canonical
// node encodings through as it computes RootHash. It is write-only: this
// implementation never reads a node back, so a freshly opened Trie
// always starts empty regardless of any root a prior commit published
// (see DESIGN.md for the concrete consequence of that gap).
type NodeStore interface {
	Put(hash common.Hash, encoded []byte) error
}

// New returns an empty trie backed by db. db may be nil, in which case
// node writes are simply discarded (useful for throwaway/test tries).
func New(db NodeStore) *Trie {
	return &Trie{db: db}
}

// Get returns the value stored for key, or nil if key is absent.
func (t *Trie) Get(key []byte) []byte {
	v, _ := t.get(t.root, keybytesToHex(key), 0)
	return v
}

func (t *Trie) get(n node, key []byte, pos int) (value []byte, newnode node) {
	switch n := n.(type) {
	case nil:
		return nil, nil
	case valueNode:
		return n, n
	case *shortNode:
		if len(key)-pos < len(n.Key) || !bytesEqual(n.Key, key[pos:pos+len(n.Key)]) {
			// key not present in trie
			return nil, n
		}
		value, _ = t.get(n.Val, key, pos+len(n.Key))
		return value, n
	case *fullNode:
		value, _ = t.get(n.Children[key[pos]], key, pos+1)
		return value, n
	default:
		panic(fmt.Sprintf("trie: unhandled node type %T", n))
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Set inserts or overwrites the value at key. Setting an empty value
// removes the slot entirely (EIP-style zero-deletion, Section 4.1).
// Set returns an error for symmetry with RootHash, even though insert
// and delete are pure in-memory operations and never actually fail: a
// Set can never reach the NodeStore, only RootHash can.
func (t *Trie) Set(key, value []byte) error {
	k := keybytesToHex(key)
	if len(value) == 0 {
		t.root = t.delete(t.root, nil, k)
		return nil
	}
	_, n := t.insert(t.root, nil, k, valueNode(value))
	t.root = n
	return nil
}

func (t *Trie) insert(n node, prefix, key []byte, value node) (bool, node) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok {
			return !bytesEqual(v, value.(valueNode)), value
		}
		return true, value
	}
	switch n := n.(type) {
	case nil:
		return true, &shortNode{Key: append([]byte{}, key...), Val: value}

	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		// If the whole key matches, keep this short node as is and
		// only update the value.
		if matchlen == len(n.Key) {
			dirty, nn := t.insert(n.Val, append(prefix, key[:matchlen]...), key[matchlen:], value)
			if !dirty {
				return false, n
			}
			return true, &shortNode{Key: n.Key, Val: nn}
		}
		// Otherwise branch out at the index where they differ.
		branch := &fullNode{}
		_, branch.Children[n.Key[matchlen]] = t.insert(nil, append(prefix, n.Key[:matchlen+1]...), n.Key[matchlen+1:], n.Val)
		_, branch.Children[key[matchlen]] = t.insert(nil, append(prefix, key[:matchlen+1]...), key[matchlen+1:], value)
		// Replace this shortNode with the branch if it occurs at index 0.
		if matchlen == 0 {
			return true, branch
		}
		// New branch node is created as a child of the original short node.
		return true, &shortNode{Key: key[:matchlen], Val: branch}

	case *fullNode:
		dirty, nn := t.insert(n.Children[key[0]], append(prefix, key[0]), key[1:], value)
		if !dirty {
			return false, n
		}
		cp := n.copy()
		cp.Children[key[0]] = nn
		return true, cp

	default:
		panic(fmt.Sprintf("trie: unhandled node type %T", n))
	}
}

func (t *Trie) delete(n node, prefix, key []byte) node {
	switch n := n.(type) {
	case *shortNode:
		matchlen := prefixLen(key, n.Key)
		if matchlen < len(n.Key) {
			return n // don't replace n on mismatch, key not found
		}
		if matchlen == len(key) {
			return nil // remove the whole shortNode
		}
		// The key is longer than n.Key, recurse below it.
		child := t.delete(n.Val, append(prefix, key[:len(n.Key)]...), key[len(n.Key):])
		switch child := child.(type) {
		case *shortNode:
			// Deleting from the subtrie reduced it to another
			// short node. Merge the nodes to avoid creating a
			// shortNode{..., shortNode{...}} chain.
			return &shortNode{Key: concat(n.Key, child.Key...), Val: child.Val}
		default:
			return &shortNode{Key: n.Key, Val: child}
		}

	case *fullNode:
		cp := n.copy()
		cp.Children[key[0]] = t.delete(cp.Children[key[0]], append(prefix, key[0]), key[1:])

		// Check how many children are left after deletion.
		pos := -1
		count := 0
		for i, c := range &cp.Children {
			if c != nil {
				count++
				if pos == -1 || count > 1 {
					pos = i
				}
				if count > 1 {
					break
				}
			}
		}
		if count == 1 {
			// The branch has only one child left: collapse it.
			cnode := cp.Children[pos]
			if short, ok := cnode.(*shortNode); ok {
				// Replace the branch with the child short node,
				// extended by the nibble leading to it.
				k := concat([]byte{byte(pos)}, short.Key...)
				return &shortNode{Key: k, Val: short.Val}
			}
			return &shortNode{Key: []byte{byte(pos)}, Val: cnode}
		}
		return cp

	case nil:
		return nil

	case valueNode:
		return nil

	default:
		panic(fmt.Sprintf("trie: unhandled node type %T", n))
	}
}

func concat(s1 []byte, s2 ...byte) []byte {
	r := make([]byte, len(s1)+len(s2))
	copy(r, s1)
	copy(r[len(s1):], s2)
	return r
}

// RootHash returns the Keccak-256 commitment to the trie's current
// contents. Deterministic and identical to a reference Merkle-Patricia
// trie built from the same key/value multiset (Section 4.1). The only
// way this can fail is a NodeStore.Put write-through failure; the caller
// is responsible for surfacing it as a BackingStoreError unchanged,
// rather than retrying or masking it.
func (t *Trie) RootHash() (common.Hash, error) {
	if t.root == nil {
		return EmptyRootHash, nil
	}
	enc, err := encodeNode(t.root, t.db)
	if err != nil {
		return common.Hash{}, err
	}
	h, err := common.HashData(enc)
	if err != nil {
		return common.Hash{}, err
	}
	if t.db != nil {
		if err := t.db.Put(h, enc); err != nil {
			return common.Hash{}, err
		}
	}
	return h, nil
}
