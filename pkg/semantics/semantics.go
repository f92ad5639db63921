// Copyright 2025 Certen Protocol
//
// Zero-value semantic taxonomy for storage slots.
//
// A resolved storage slot can read as zero for several distinct reasons.
// The taxonomy is a closed, four-variant enumeration; extending it changes
// the meaning of every layout commitment that references it (see
// pkg/layout), so new variants are a breaking, commitment-changing
// revision, not an additive one.

package semantics

import "fmt"

// ZeroSemantics declares why a storage slot may legitimately read as zero.
type ZeroSemantics uint8

const (
	// NeverWritten means the slot has never been written.
	NeverWritten ZeroSemantics = iota
	// ExplicitlyZero means the slot was intentionally zeroed at or after
	// initialisation.
	ExplicitlyZero
	// Cleared means the slot previously held a non-zero value and was
	// set to zero.
	Cleared
	// ValidZero means zero is a routine operational state for this field.
	ValidZero
)

// numVariants is the size of the closed enumeration; commitment hashing
// and the witness codec both reject tags outside this range.
const numVariants = 4

// String renders the canonical loader keyword for the variant.
func (z ZeroSemantics) String() string {
	switch z {
	case NeverWritten:
		return "never_written"
	case ExplicitlyZero:
		return "explicitly_zero"
	case Cleared:
		return "cleared"
	case ValidZero:
		return "valid_zero"
	default:
		return fmt.Sprintf("zero_semantics(%d)", uint8(z))
	}
}

// Valid reports whether z is one of the four defined variants.
func (z ZeroSemantics) Valid() bool {
	return z < numVariants
}

// ParseZeroSemantics maps a schema loader keyword to its ZeroSemantics value.
func ParseZeroSemantics(s string) (ZeroSemantics, error) {
	switch s {
	case "never_written":
		return NeverWritten, nil
	case "explicitly_zero":
		return ExplicitlyZero, nil
	case "cleared":
		return Cleared, nil
	case "valid_zero":
		return ValidZero, nil
	default:
		return 0, fmt.Errorf("semantics: unknown zero_semantics keyword %q", s)
	}
}

// StorageSemantics pairs a declared zero-semantics tag (present at layout
// authoring time) with an optional validated tag, produced by an external
// collaborator observing the actual chain history of the slot.
type StorageSemantics struct {
	declared  ZeroSemantics
	validated *ZeroSemantics
}

// New returns a StorageSemantics with only the declared tag set.
func New(declared ZeroSemantics) StorageSemantics {
	return StorageSemantics{declared: declared}
}

// WithValidation returns a copy of s with the validated tag set.
func (s StorageSemantics) WithValidation(validated ZeroSemantics) StorageSemantics {
	s.validated = &validated
	return s
}

// Declared returns the declared zero-semantics tag.
func (s StorageSemantics) Declared() ZeroSemantics {
	return s.declared
}

// Validated returns the validated tag and whether one is present.
func (s StorageSemantics) Validated() (ZeroSemantics, bool) {
	if s.validated == nil {
		return 0, false
	}
	return *s.validated, true
}

// Effective returns the validated tag if present, else the declared tag.
func (s StorageSemantics) Effective() ZeroSemantics {
	if s.validated != nil {
		return *s.validated
	}
	return s.declared
}

// HasConflict reports whether a validated tag is present and differs from
// the declared tag.
func (s StorageSemantics) HasConflict() bool {
	return s.validated != nil && *s.validated != s.declared
}
