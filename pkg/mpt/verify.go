// Copyright 2025 Certen Protocol
//
// Merkle-Patricia-Trie proof verification: checks an RLP-encoded Merkle-Patricia
// Trie inclusion proof against a root hash, walking branch/extension/leaf
// nodes while consuming nibbles from the key's path.

package mpt

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Mode selects the verifier's memory discipline. Both modes run the same
// algorithm; Constrained additionally avoids any dynamic nibble-buffer
// growth, using a fixed 64-entry array instead of a slice that could reallocate.
type Mode int

const (
	Std Mode = iota
	Constrained
)

// Verify checks that proofBytes is a valid MPT inclusion proof for key
// under root, and returns the recovered 32-byte value left-padded from
// its RLP(uint) storage form. If expectedValue is non-nil, the recovered
// value must equal it or ErrValueMismatch is returned.
func Verify(mode Mode, root [32]byte, key [32]byte, expectedValue *[32]byte, proofBytes []byte) ([32]byte, error) {
	nodes, err := splitNodes(proofBytes)
	if err != nil {
		return [32]byte{}, err
	}

	raw, err := walk(mode, root, key, nodes)
	if err != nil {
		return [32]byte{}, err
	}

	// The trie stores RLP(uint) with leading zeros stripped: the recovered
	// node value is itself an RLP string that still needs one decode before
	// left-padding back to 32 bytes.
	var trimmed []byte
	if len(raw) > 0 {
		if err := rlp.DecodeBytes(raw, &trimmed); err != nil {
			return [32]byte{}, fmt.Errorf("%w: stored value: %v", ErrMalformedNode, err)
		}
	}

	var value [32]byte
	if len(trimmed) > 32 {
		return [32]byte{}, fmt.Errorf("%w: value exceeds 32 bytes", ErrMalformedNode)
	}
	copy(value[32-len(trimmed):], trimmed)

	if expectedValue != nil && value != *expectedValue {
		return [32]byte{}, ErrValueMismatch
	}
	return value, nil
}

// walk runs the branch/extension/leaf state machine, returning the raw
// (un-padded) stored value bytes.
func walk(mode Mode, root [32]byte, key [32]byte, nodes [][]byte) ([]byte, error) {
	nibbleArray := keyToNibbles(key) // fixed-size in both modes
	var remaining []byte
	if mode == Constrained {
		remaining = nibbleArray[:]
	} else {
		remaining = append([]byte(nil), nibbleArray[:]...)
	}

	currentHash := root[:]
	nodeIdx := 0
	var pendingEmbedded []byte

	for {
		var nodeBytes []byte
		if pendingEmbedded != nil {
			nodeBytes = pendingEmbedded
			pendingEmbedded = nil
		} else {
			if nodeIdx >= len(nodes) {
				return nil, ErrProofExhausted
			}
			nodeBytes = nodes[nodeIdx]
			nodeIdx++
			h := crypto.Keccak256(nodeBytes)
			if !bytes.Equal(h, currentHash) {
				return nil, ErrHashMismatch
			}
		}

		var items []rlp.RawValue
		if err := rlp.DecodeBytes(nodeBytes, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedNode, err)
		}

		switch len(items) {
		case 17:
			if len(remaining) == 0 {
				return decodeValueItem(items[16])
			}
			n := remaining[0]
			remaining = remaining[1:]
			if int(n) >= 16 {
				return nil, fmt.Errorf("%w: invalid nibble %d", ErrMalformedNode, n)
			}
			empty, hash, embedded, err := classifyChild(items[n])
			if err != nil {
				return nil, err
			}
			if empty {
				return nil, ErrKeyNotPresent
			}
			if hash != nil {
				currentHash = hash
				continue
			}
			pendingEmbedded = embedded

		case 2:
			var encPath []byte
			if err := rlp.DecodeBytes(items[0], &encPath); err != nil {
				return nil, fmt.Errorf("%w: node path: %v", ErrMalformedNode, err)
			}
			path, isLeaf := decodeCompact(encPath)
			if isLeaf {
				if !bytes.Equal(path, remaining) {
					return nil, ErrPathDivergence
				}
				return decodeValueItem(items[1])
			}
			if len(remaining) < len(path) || !bytes.Equal(remaining[:len(path)], path) {
				return nil, ErrPathDivergence
			}
			remaining = remaining[len(path):]
			empty, hash, embedded, err := classifyChild(items[1])
			if err != nil {
				return nil, err
			}
			if empty {
				return nil, ErrKeyNotPresent
			}
			if hash != nil {
				currentHash = hash
				continue
			}
			pendingEmbedded = embedded

		default:
			return nil, fmt.Errorf("%w: %d items", ErrMalformedNode, len(items))
		}
	}
}
