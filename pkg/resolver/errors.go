// Copyright 2025 Certen Protocol

package resolver

import "fmt"

// PathError names the failing step when a query cannot be resolved against
// a layout. StepIndex is the zero-based index into the AccessPath's Steps
// that failed, or -1 if the root field itself failed.
type PathError struct {
	FieldLabel string
	StepIndex  int
	Msg        string
}

func (e *PathError) Error() string {
	if e.StepIndex < 0 {
		return fmt.Sprintf("resolver: %s (field %q)", e.Msg, e.FieldLabel)
	}
	return fmt.Sprintf("resolver: %s (field %q, step %d)", e.Msg, e.FieldLabel, e.StepIndex)
}

func pathErrorf(field string, step int, format string, args ...any) error {
	return &PathError{FieldLabel: field, StepIndex: step, Msg: fmt.Sprintf(format, args...)}
}
