// Copyright 2025 Certen Protocol

package circuit

// Result is the per-witness outcome of circuit processing: either a
// successfully extracted typed value, or a reported, non-fatal rejection
// reason.
type Result struct {
	Valid      bool
	FieldIndex uint16
	Value      TypedValue
	Reason     Reason
	Err        error

	// UntouchedSlot reports that a zero-valued address field was declared
	// never-written: the zero asserts the slot has no history, rather than
	// holding a cleared or zeroed address. Informational — the declaration
	// is already bound into the layout commitment.
	UntouchedSlot bool
}
