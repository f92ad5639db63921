// Copyright 2025 Certen Protocol
//
// Type-size helpers for the key resolver. Array elements are never packed
// across slots here: every element of a FixedArray/DynamicArray occupies
// a whole number of 32-byte words, rounded up.

package resolver

import (
	"fmt"

	"github.com/timewave-computer/traverse/pkg/layout"
)

// wordsOf returns the number of 32-byte slots a single value of typeName
// occupies when used as an array element or nested struct.
func wordsOf(typeName string, types map[string]layout.TypeInfo) (int, error) {
	t, ok := types[typeName]
	if !ok {
		return 0, fmt.Errorf("resolver: unknown type %q", typeName)
	}
	switch t.Kind {
	case layout.KindScalar, layout.KindDynamicBytes, layout.KindString, layout.KindMapping, layout.KindDynamicArray:
		return 1, nil
	case layout.KindFixedArray:
		elemWords, err := wordsOf(t.Element, types)
		if err != nil {
			return 0, err
		}
		return int(t.Length) * elemWords, nil
	case layout.KindStruct:
		return structWords(t, types)
	default:
		return 0, fmt.Errorf("resolver: unhandled type kind %v", t.Kind)
	}
}

// byteSizeOf returns the byte footprint of typeName within its containing
// slot: the declared scalar size, or a full-word multiple for anything else.
func byteSizeOf(typeName string, types map[string]layout.TypeInfo) (int, error) {
	t, ok := types[typeName]
	if !ok {
		return 0, fmt.Errorf("resolver: unknown type %q", typeName)
	}
	if t.Kind == layout.KindScalar {
		return t.Size, nil
	}
	words, err := wordsOf(typeName, types)
	if err != nil {
		return 0, err
	}
	return words * 32, nil
}

// structWords computes a struct's total slot footprint as the extent of its
// furthest member, rounded up to a whole word. Member offsets are declared
// byte offsets from the struct's first slot.
func structWords(t layout.TypeInfo, types map[string]layout.TypeInfo) (int, error) {
	extent := 0
	for _, m := range t.Members {
		size, err := byteSizeOf(m.Type, types)
		if err != nil {
			return 0, err
		}
		end := int(m.Offset) + size
		if end > extent {
			extent = end
		}
	}
	return (extent + 31) / 32, nil
}
