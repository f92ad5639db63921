// Copyright 2025 Certen Protocol
//
// Test-only trie construction. Builds small, real RLP-encoded tries by
// hand using the same rlp/crypto primitives the verifier consumes, so
// tests exercise genuine node encodings rather than hand-rolled fixtures
// that happen to satisfy the decoder.

package mpt

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// BuildSingleLeafTrie builds a one-entry trie: the root node is itself a
// leaf carrying the full 64-nibble path. Returns the root hash and the
// (one-node) proof.
func BuildSingleLeafTrie(key [32]byte, value []byte) (root [32]byte, proof [][]byte, err error) {
	nibbles := keyToNibbles(key)
	leaf, err := encodeLeafNode(nibbles[:], value)
	if err != nil {
		return [32]byte{}, nil, err
	}
	root = toHashArray(crypto.Keccak256(leaf))
	return root, [][]byte{leaf}, nil
}

// BuildTwoLeafTrie builds a two-entry trie whose keys differ in their
// first nibble: the root is a 17-item branch node with two leaf children.
// Returns the root hash and the proof path for each key.
func BuildTwoLeafTrie(keyA, keyB [32]byte, valueA, valueB []byte) (root [32]byte, proofA, proofB [][]byte, err error) {
	nibblesA := keyToNibbles(keyA)
	nibblesB := keyToNibbles(keyB)
	if nibblesA[0] == nibblesB[0] {
		return [32]byte{}, nil, nil, fmt.Errorf("mpt: BuildTwoLeafTrie requires keys differing in their first nibble")
	}

	leafA, err := encodeLeafNode(nibblesA[1:], valueA)
	if err != nil {
		return [32]byte{}, nil, nil, err
	}
	leafB, err := encodeLeafNode(nibblesB[1:], valueB)
	if err != nil {
		return [32]byte{}, nil, nil, err
	}
	hashA := crypto.Keccak256(leafA)
	hashB := crypto.Keccak256(leafB)

	branchItems := make([]interface{}, 17)
	for i := range branchItems {
		branchItems[i] = []byte{}
	}
	branchItems[nibblesA[0]] = hashA
	branchItems[nibblesB[0]] = hashB

	branchBytes, err := rlp.EncodeToBytes(branchItems)
	if err != nil {
		return [32]byte{}, nil, nil, err
	}
	root = toHashArray(crypto.Keccak256(branchBytes))

	return root, [][]byte{branchBytes, leafA}, [][]byte{branchBytes, leafB}, nil
}

// BuildExtensionTrie builds a trie for two keys sharing their first two
// nibbles but differing in the third: the root is an extension node over
// the shared prefix, its child a branch holding the two leaves. Returns
// the root hash and the proof path for each key.
func BuildExtensionTrie(keyA, keyB [32]byte, valueA, valueB []byte) (root [32]byte, proofA, proofB [][]byte, err error) {
	na := keyToNibbles(keyA)
	nb := keyToNibbles(keyB)
	if na[0] != nb[0] || na[1] != nb[1] || na[2] == nb[2] {
		return [32]byte{}, nil, nil, fmt.Errorf("mpt: BuildExtensionTrie requires keys sharing nibbles 0-1 and differing in nibble 2")
	}

	leafA, err := encodeLeafNode(na[3:], valueA)
	if err != nil {
		return [32]byte{}, nil, nil, err
	}
	leafB, err := encodeLeafNode(nb[3:], valueB)
	if err != nil {
		return [32]byte{}, nil, nil, err
	}

	branchItems := make([]interface{}, 17)
	for i := range branchItems {
		branchItems[i] = []byte{}
	}
	branchItems[na[2]] = crypto.Keccak256(leafA)
	branchItems[nb[2]] = crypto.Keccak256(leafB)

	branchBytes, err := rlp.EncodeToBytes(branchItems)
	if err != nil {
		return [32]byte{}, nil, nil, err
	}

	extBytes, err := rlp.EncodeToBytes([]interface{}{
		encodeCompact(na[:2], false),
		crypto.Keccak256(branchBytes),
	})
	if err != nil {
		return [32]byte{}, nil, nil, err
	}
	root = toHashArray(crypto.Keccak256(extBytes))

	proofA = [][]byte{extBytes, branchBytes, leafA}
	proofB = [][]byte{extBytes, branchBytes, leafB}
	return root, proofA, proofB, nil
}

// ConcatProof joins an ordered slice of node blobs into the flat
// proof_bytes form witnesses carry: plain concatenation, no inner
// framing.
func ConcatProof(nodes [][]byte) []byte {
	var out []byte
	for _, n := range nodes {
		out = append(out, n...)
	}
	return out
}

// encodeLeafNode builds a real 2-item RLP leaf node: compact-encoded path
// plus the stored value. Storage tries hold RLP(uint) — the value is
// trimmed of leading zero bytes, RLP-encoded, and that encoding becomes
// the leaf's value item, matching genuine Ethereum storage encoding.
func encodeLeafNode(nibbles []byte, value []byte) ([]byte, error) {
	path := encodeCompact(nibbles, true)
	encValue, err := rlp.EncodeToBytes(trimLeadingZeros(value))
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes([]interface{}{path, encValue})
}

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

func toHashArray(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}
