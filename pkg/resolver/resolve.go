// Copyright 2025 Certen Protocol
//
// Ethereum key resolution: derives the 32-byte storage key
// for a parsed query against a canonical layout, following Solidity's
// slot-and-keccak rules for mappings, arrays, and structs.

package resolver

import (
	"github.com/holiman/uint256"
	"github.com/timewave-computer/traverse/pkg/layout"
	"github.com/timewave-computer/traverse/pkg/query"
)

// Resolve derives the storage key and leaf type for path against l.
// l must already be canonical (layout.Canonicalize); Resolve does not
// re-validate layout invariants.
func Resolve(l layout.LayoutInfo, path query.AccessPath) (ResolvedKey, error) {
	entry, ok := findEntry(l, path.FieldLabel)
	if !ok {
		return ResolvedKey{}, pathErrorf(path.FieldLabel, -1, "unknown field")
	}

	slot, err := uint256.FromDecimal(entry.Slot)
	if err != nil {
		return ResolvedKey{}, pathErrorf(path.FieldLabel, -1, "invalid slot %q: %v", entry.Slot, err)
	}

	curType, ok := l.Types[entry.TypeName]
	if !ok {
		return ResolvedKey{}, pathErrorf(path.FieldLabel, -1, "unknown type %q", entry.TypeName)
	}
	offset := entry.Offset

	for i, step := range path.Steps {
		slot, curType, offset, err = resolveStep(l, path.FieldLabel, i, slot, curType, offset, step)
		if err != nil {
			return ResolvedKey{}, err
		}
	}

	if !isLeafKind(curType.Kind) {
		return ResolvedKey{}, pathErrorf(path.FieldLabel, len(path.Steps)-1, "path does not reach a leaf value (resolved to %v)", curType.Kind)
	}

	size := 32
	if curType.Kind == layout.KindScalar {
		size = curType.Size
	}

	return ResolvedKey{
		Key:    slot.Bytes32(),
		Type:   curType,
		Offset: offset,
		Size:   size,
	}, nil
}

func isLeafKind(k layout.Kind) bool {
	switch k {
	case layout.KindScalar, layout.KindDynamicBytes, layout.KindString:
		return true
	default:
		return false
	}
}

func findEntry(l layout.LayoutInfo, label string) (layout.StorageEntry, bool) {
	for _, e := range l.Storage {
		if e.Label == label {
			return e, true
		}
	}
	return layout.StorageEntry{}, false
}

// resolveStep dispatches one path step against the current (slot, type,
// offset) triple.
func resolveStep(l layout.LayoutInfo, field string, stepIdx int, slot *uint256.Int, curType layout.TypeInfo, offset uint32, step query.Step) (*uint256.Int, layout.TypeInfo, uint32, error) {
	switch curType.Kind {
	case layout.KindMapping:
		if step.Kind != query.StepBracket {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "mapping requires an index step")
		}
		keyType, ok := l.Types[curType.Key]
		if !ok {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "unknown mapping key type %q", curType.Key)
		}
		padded := padKey(step.Literal.Bytes, keyType)
		next := mappingSlot(padded, slot.Bytes32())
		valType, ok := l.Types[curType.Value]
		if !ok {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "unknown mapping value type %q", curType.Value)
		}
		return new(uint256.Int).SetBytes(next[:]), valType, 0, nil

	case layout.KindFixedArray:
		if step.Kind != query.StepBracket || step.Literal.Value == nil {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "fixed array requires a numeric index step")
		}
		idx := step.Literal.Value
		if idx.Sign() < 0 || !idx.IsUint64() || idx.Uint64() >= curType.Length {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "array index %s out of range (len %d)", idx.String(), curType.Length)
		}
		elemType, ok := l.Types[curType.Element]
		if !ok {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "unknown array element type %q", curType.Element)
		}
		words, err := wordsOf(curType.Element, l.Types)
		if err != nil {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "%v", err)
		}
		delta := new(uint256.Int).Mul(uint256.NewInt(idx.Uint64()), uint256.NewInt(uint64(words)))
		next, overflow := new(uint256.Int).AddOverflow(slot, delta)
		if overflow {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "slot arithmetic overflow")
		}
		return next, elemType, 0, nil

	case layout.KindDynamicArray:
		if step.Kind != query.StepBracket || step.Literal.Value == nil {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "dynamic array requires a numeric index step")
		}
		idx := step.Literal.Value
		if idx.Sign() < 0 || !idx.IsUint64() {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "array index %s out of range", idx.String())
		}
		elemType, ok := l.Types[curType.Element]
		if !ok {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "unknown array element type %q", curType.Element)
		}
		words, err := wordsOf(curType.Element, l.Types)
		if err != nil {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "%v", err)
		}
		base := dynamicArrayBase(slot.Bytes32())
		delta := new(uint256.Int).Mul(uint256.NewInt(idx.Uint64()), uint256.NewInt(uint64(words)))
		next, overflow := new(uint256.Int).AddOverflow(new(uint256.Int).SetBytes(base[:]), delta)
		if overflow {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "slot arithmetic overflow")
		}
		return next, elemType, 0, nil

	case layout.KindStruct:
		if step.Kind != query.StepMember {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "struct requires a member-access step")
		}
		member, ok := findMember(curType, step.Member)
		if !ok {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "unknown struct member %q", step.Member)
		}
		memberType, ok := l.Types[member.Type]
		if !ok {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "unknown member type %q", member.Type)
		}
		slotDelta := member.Offset / 32
		byteOffset := uint32(member.Offset % 32)
		next, overflow := new(uint256.Int).AddOverflow(slot, uint256.NewInt(slotDelta))
		if overflow {
			return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "slot arithmetic overflow")
		}
		return next, memberType, byteOffset, nil

	default:
		return nil, layout.TypeInfo{}, 0, pathErrorf(field, stepIdx, "type %v does not accept further steps", curType.Kind)
	}
}

func findMember(t layout.TypeInfo, label string) (layout.StructMember, bool) {
	for _, m := range t.Members {
		if m.Label == label {
			return m, true
		}
	}
	return layout.StructMember{}, false
}
