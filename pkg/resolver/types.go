// Copyright 2025 Certen Protocol

package resolver

import "github.com/timewave-computer/traverse/pkg/layout"

// ResolvedKey is the output of resolving an AccessPath against a canonical
// layout: the 32-byte storage key, the effective leaf type, and
// for packed scalars the (offset, size) of the value within its slot.
type ResolvedKey struct {
	Key    [32]byte
	Type   layout.TypeInfo
	Offset uint32
	Size   int
}
