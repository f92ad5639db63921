// Copyright 2025 Certen Protocol

package witness

import "errors"

// Decode errors. A malformed witness is
// dropped by the caller; the circuit processor never attempts repair.
var (
	ErrTooShort         = errors.New("witness: input shorter than the fixed prefix")
	ErrProofLenMismatch = errors.New("witness: declared proof_len does not match remaining bytes")
	ErrInvalidZeroTag   = errors.New("witness: zero_semantics tag is outside the closed enumeration")
)
