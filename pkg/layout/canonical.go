// Copyright 2025 Certen Protocol
//
// Layout canonicalisation and commitment.
//
// Canonicalisation is byte-reproducible: storage entries are kept in the
// input's declared slot order (first-seen, as emitted by the compiler);
// the commitment is a SHA-256 over a length-prefixed, little-endian
// concatenation of the layout's fields. The types section is
// validated for internal consistency but never hashed: every type
// reference's effect is fully observable through the resolved storage
// key (C3) and the typed value delivered to the circuit processor (C7).

package layout

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Commitment is the 32-byte layout fingerprint.
type Commitment [32]byte

// maxSlot is 2^256 - 1.
var maxSlot = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Canonicalize validates l and returns its canonical form plus the
// layout commitment. The canonical form's Storage slice is l.Storage
// unmodified in order (callers must already present entries in compiler
// emission order); Types is copied defensively.
func Canonicalize(l LayoutInfo) (LayoutInfo, Commitment, error) {
	if err := validate(l); err != nil {
		return LayoutInfo{}, Commitment{}, err
	}

	canon := LayoutInfo{
		ContractName: l.ContractName,
		Storage:      append([]StorageEntry(nil), l.Storage...),
		Types:        copyTypes(l.Types),
	}

	commitment, err := computeCommitment(canon)
	if err != nil {
		return LayoutInfo{}, Commitment{}, err
	}
	return canon, commitment, nil
}

func copyTypes(in map[string]TypeInfo) map[string]TypeInfo {
	out := make(map[string]TypeInfo, len(in))
	for k, v := range in {
		v.Members = append([]StructMember(nil), v.Members...)
		out[k] = v
	}
	return out
}

func validate(l LayoutInfo) error {
	if l.ContractName == "" {
		return ErrEmptyContractName
	}
	if len(l.Storage) == 0 {
		return ErrNoStorageEntries
	}

	labels := make(map[string]struct{}, len(l.Storage))
	slotGroups := make(map[string][]StorageEntry)

	for _, entry := range l.Storage {
		if entry.Label == "" {
			return ErrEmptyLabel
		}
		if _, dup := labels[entry.Label]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, entry.Label)
		}
		labels[entry.Label] = struct{}{}

		slotVal, ok := new(big.Int).SetString(entry.Slot, 10)
		if !ok || slotVal.Sign() < 0 || slotVal.Cmp(maxSlot) > 0 {
			return fmt.Errorf("%w: entry %q slot %q", ErrInvalidSlot, entry.Label, entry.Slot)
		}
		if entry.Offset > 31 {
			return fmt.Errorf("%w: entry %q offset %d", ErrInvalidOffset, entry.Label, entry.Offset)
		}
		if !entry.ZeroSemantics.Valid() {
			return fmt.Errorf("%w: entry %q tag %d", ErrInvalidZeroTag, entry.Label, entry.ZeroSemantics)
		}
		typ, ok := l.Types[entry.TypeName]
		if !ok {
			return fmt.Errorf("%w: entry %q references %q", ErrUnknownType, entry.Label, entry.TypeName)
		}
		if entry.Offset != 0 && typ.Kind != KindScalar {
			return fmt.Errorf("%w: entry %q", ErrOffsetWithoutScalar, entry.Label)
		}

		slotGroups[slotVal.String()] = append(slotGroups[slotVal.String()], entry)
	}

	for typeName, typ := range l.Types {
		if typ.Kind == KindScalar && (typ.Size < 1 || typ.Size > 32) {
			return fmt.Errorf("%w: type %q size %d", ErrInvalidScalarSize, typeName, typ.Size)
		}
	}

	if err := validateTypeReferences(l.Types); err != nil {
		return err
	}
	if err := validatePacking(l.Types, slotGroups); err != nil {
		return err
	}
	return nil
}

// validateTypeReferences checks that every type name reachable from any
// storage entry's type exists in the Types map, and that no cycle exists
// through static containment (FixedArray element, Struct member) — cycles
// through dynamic indirection (Mapping, DynamicArray) are permitted
// because a step through them is required to reach the next type.
func validateTypeReferences(types map[string]TypeInfo) error {
	for name, typ := range types {
		switch typ.Kind {
		case KindFixedArray, KindDynamicArray:
			if _, ok := types[typ.Element]; !ok {
				return fmt.Errorf("%w: type %q element %q", ErrUnknownType, name, typ.Element)
			}
		case KindMapping:
			if _, ok := types[typ.Key]; !ok {
				return fmt.Errorf("%w: type %q key %q", ErrUnknownType, name, typ.Key)
			}
			if _, ok := types[typ.Value]; !ok {
				return fmt.Errorf("%w: type %q value %q", ErrUnknownType, name, typ.Value)
			}
		case KindStruct:
			for _, m := range typ.Members {
				if _, ok := types[m.Type]; !ok {
					return fmt.Errorf("%w: type %q member %q references %q", ErrUnknownType, name, m.Label, m.Type)
				}
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(types))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %q", ErrCyclicType, name)
		case done:
			return nil
		}
		state[name] = visiting
		typ, ok := types[name]
		if ok {
			switch typ.Kind {
			case KindFixedArray:
				if err := visit(typ.Element); err != nil {
					return err
				}
			case KindStruct:
				for _, m := range typ.Members {
					if err := visit(m.Type); err != nil {
						return err
					}
				}
			}
		}
		state[name] = done
		return nil
	}
	for name := range types {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// validatePacking ensures packed scalar fields sharing a slot do not
// overlap and stay within the 32-byte slot.
func validatePacking(types map[string]TypeInfo, slotGroups map[string][]StorageEntry) error {
	for _, entries := range slotGroups {
		if len(entries) < 2 {
			// Still must bounds-check a lone packed scalar.
			for _, e := range entries {
				if err := checkBounds(types, e); err != nil {
					return err
				}
			}
			continue
		}
		type span struct {
			lo, hi int
			label  string
		}
		var spans []span
		for _, e := range entries {
			typ := types[e.TypeName]
			lo := int(e.Offset)
			hi := lo + typ.Size
			if hi > 32 {
				return fmt.Errorf("%w: entry %q", ErrPackedOutOfBounds, e.Label)
			}
			spans = append(spans, span{lo, hi, e.Label})
		}
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				a, b := spans[i], spans[j]
				if a.lo < b.hi && b.lo < a.hi {
					return fmt.Errorf("%w: %q and %q in the same slot", ErrOverlappingPacked, a.label, b.label)
				}
			}
		}
	}
	return nil
}

func checkBounds(types map[string]TypeInfo, e StorageEntry) error {
	typ := types[e.TypeName]
	if int(e.Offset)+typ.Size > 32 {
		return fmt.Errorf("%w: entry %q", ErrPackedOutOfBounds, e.Label)
	}
	return nil
}

// computeCommitment implements the byte-exact SHA-256 commitment.
func computeCommitment(l LayoutInfo) (Commitment, error) {
	h := sha256.New()

	writeU32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		h.Write(b[:])
	}
	writeLenPrefixed := func(s string) {
		writeU32(uint32(len(s)))
		h.Write([]byte(s))
	}

	writeLenPrefixed(l.ContractName)
	writeU32(uint32(len(l.Storage)))

	for _, entry := range l.Storage {
		writeLenPrefixed(entry.Label)
		writeLenPrefixed(entry.Slot)
		writeU32(entry.Offset)
		writeLenPrefixed(entry.TypeName)
		if !entry.ZeroSemantics.Valid() {
			return Commitment{}, fmt.Errorf("%w: entry %q", ErrInvalidZeroTag, entry.Label)
		}
		h.Write([]byte{byte(entry.ZeroSemantics)})
	}

	var out Commitment
	copy(out[:], h.Sum(nil))
	return out, nil
}
