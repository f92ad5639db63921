// Copyright 2025 Certen Protocol

package mpt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

// splitNodes breaks a flat concatenation of RLP-encoded trie nodes (a
// witness's proof_bytes carries no inner framing) back into individual
// node blobs. RLP is self-delimiting, so each node's own length prefix is
// enough to find the next node's start.
func splitNodes(proofBytes []byte) ([][]byte, error) {
	if len(proofBytes) == 0 {
		return nil, nil
	}
	stream := rlp.NewStream(bytes.NewReader(proofBytes), 0)
	var nodes [][]byte
	for {
		raw, err := stream.Raw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedNode, err)
		}
		nodes = append(nodes, raw)
	}
	return nodes, nil
}

// classifyChild inspects one branch-slot RLP item and reports whether it
// is empty, a 32-byte hash reference to the next proof entry, or an
// embedded node (its RLP encoding is under 32 bytes, so the child is
// inlined rather than hashed).
func classifyChild(raw rlp.RawValue) (empty bool, hash []byte, embedded []byte, err error) {
	if len(raw) == 1 && raw[0] == 0x80 {
		return true, nil, nil, nil
	}
	if len(raw) > 0 && raw[0] < 0xc0 {
		var b []byte
		if err := rlp.DecodeBytes(raw, &b); err != nil {
			return false, nil, nil, fmt.Errorf("%w: %v", ErrMalformedChild, err)
		}
		if len(b) == 0 {
			return true, nil, nil, nil
		}
		if len(b) == 32 {
			return false, b, nil, nil
		}
		return false, nil, nil, fmt.Errorf("%w: string child of length %d", ErrMalformedChild, len(b))
	}
	// A list under 32 bytes: an embedded node, inlined rather than hashed.
	return false, nil, []byte(raw), nil
}

// decodeValueItem decodes a branch's 17th item or a leaf's second item,
// both plain RLP byte strings.
func decodeValueItem(raw rlp.RawValue) ([]byte, error) {
	if len(raw) == 1 && raw[0] == 0x80 {
		return nil, nil
	}
	var b []byte
	if err := rlp.DecodeBytes(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNode, err)
	}
	return b, nil
}
