// Copyright 2025 Certen Protocol

package layout

import "errors"

// Schema-level errors. All are fatal to the caller; the canonicaliser
// never retries or recovers internally.
var (
	ErrEmptyContractName   = errors.New("layout: contract_name must not be empty")
	ErrNoStorageEntries    = errors.New("layout: storage must not be empty")
	ErrEmptyLabel          = errors.New("layout: storage entry label must not be empty")
	ErrDuplicateLabel      = errors.New("layout: duplicate storage entry label")
	ErrUnknownType         = errors.New("layout: unknown type reference")
	ErrInvalidSlot         = errors.New("layout: slot is not a valid decimal in range [0, 2^256-1]")
	ErrInvalidOffset       = errors.New("layout: offset must be in range [0, 31]")
	ErrInvalidScalarSize   = errors.New("layout: scalar size must be in range [1, 32]")
	ErrOverlappingPacked   = errors.New("layout: packed scalar fields overlap within a slot")
	ErrPackedOutOfBounds   = errors.New("layout: packed scalar field exceeds 32-byte slot")
	ErrOffsetWithoutScalar = errors.New("layout: non-zero offset only permitted for scalar fields")
	ErrCyclicType          = errors.New("layout: cyclic type definition through static containment")
	ErrInvalidZeroTag      = errors.New("layout: zero_semantics tag is outside the closed enumeration")
)
