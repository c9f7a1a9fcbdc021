// Copyright 2019 The go-ethereum Authors
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

import (
	"fmt"

	"github.com/quillchain/storageoverlay/common"
	"github.com/quillchain/storageoverlay/rlp"
)

// encodeNode returns the canonical RLP encoding of n, writing every
// descendant that is referenced by hash (see nodeRef) through db, keyed
// by its own hash, as it goes, the way a real trie persists its node set
// incrementally as it is hashed. Embedded (<32-byte) nodes are not
// written; the root node itself is written by Trie.RootHash.
func encodeNode(n node, db NodeStore) ([]byte, error) {
	switch n := n.(type) {
	case valueNode:
		buf := make([]byte, rlp.StringLen(n))
		rlp.EncodeString(n, buf)
		return buf, nil

	case *shortNode:
		keyEnc := hexToCompact(n.Key)
		keyRLP := make([]byte, rlp.StringLen(keyEnc))
		rlp.EncodeString(keyEnc, keyRLP)

		valRef, err := nodeRef(n.Val, db)
		if err != nil {
			return nil, err
		}

		body := append(append([]byte{}, keyRLP...), valRef...)
		out := make([]byte, rlp.ListPrefixLen(len(body))+len(body))
		n1 := rlp.EncodeListPrefix(len(body), out)
		copy(out[n1:], body)
		return out, nil

	case *fullNode:
		var body []byte
		for _, c := range n.Children {
			ref, err := nodeRef(c, db)
			if err != nil {
				return nil, err
			}
			body = append(body, ref...)
		}
		out := make([]byte, rlp.ListPrefixLen(len(body))+len(body))
		n1 := rlp.EncodeListPrefix(len(body), out)
		copy(out[n1:], body)
		return out, nil

	default:
		return nil, fmt.Errorf("trie: cannot encode node type %T", n)
	}
}

// nodeRef returns the RLP element used to reference n from its parent:
// the raw encoding itself if it is shorter than 32 bytes (embedding), or
// the RLP-wrapped Keccak-256 hash of the encoding otherwise. A nil child
// is referenced by the RLP empty string.
func nodeRef(n node, db NodeStore) ([]byte, error) {
	if n == nil {
		return []byte{0x80}, nil
	}
	enc, err := encodeNode(n, db)
	if err != nil {
		return nil, err
	}
	if len(enc) < 32 {
		return enc, nil
	}
	h, err := common.HashData(enc)
	if err != nil {
		return nil, err
	}
	if db != nil {
		if err := db.Put(h, enc); err != nil {
			return nil, err
		}
	}
	buf := make([]byte, 33)
	rlp.EncodeHash(h[:], buf)
	return buf, nil
}
