// Copyright 2025 Certen Protocol

package mpt

import "errors"

// Verification failures. All are fatal to the
// witness being checked; none are retried.
var (
	ErrProofExhausted = errors.New("mpt: proof exhausted before path was resolved")
	ErrHashMismatch   = errors.New("mpt: node hash does not match expected parent hash")
	ErrMalformedNode  = errors.New("mpt: node does not RLP-decode to a branch, extension, or leaf")
	ErrPathDivergence = errors.New("mpt: encoded path diverges from the remaining key nibbles")
	ErrKeyNotPresent  = errors.New("mpt: key is absent from the trie (empty branch slot)")
	ErrValueMismatch  = errors.New("mpt: recovered value does not match the expected value")
	ErrMalformedChild = errors.New("mpt: branch child is neither empty, a 32-byte hash, nor an embedded node")
)
