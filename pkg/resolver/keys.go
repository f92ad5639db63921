// Copyright 2025 Certen Protocol

package resolver

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/timewave-computer/traverse/pkg/layout"
)

// padKey implements the mapping-key padding rules: value
// types (address/uintN/bytesN, modelled here as any Scalar) are left-padded
// with zero bytes to 32; string and dynamic-bytes keys are used unpadded.
func padKey(raw []byte, keyType layout.TypeInfo) []byte {
	if keyType.Kind == layout.KindDynamicBytes || keyType.Kind == layout.KindString {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out
	}
	out := make([]byte, 32)
	if len(raw) > 32 {
		raw = raw[len(raw)-32:]
	}
	copy(out[32-len(raw):], raw)
	return out
}

// mappingSlot computes keccak256(pad32(key) || u256_be(slot)).
func mappingSlot(keyBytes []byte, slotBE [32]byte) [32]byte {
	buf := make([]byte, 0, len(keyBytes)+32)
	buf = append(buf, keyBytes...)
	buf = append(buf, slotBE[:]...)
	return toArray(crypto.Keccak256(buf))
}

// dynamicArrayBase computes keccak256(u256_be(slot)), the base slot of a
// dynamic array's backing storage.
func dynamicArrayBase(slotBE [32]byte) [32]byte {
	return toArray(crypto.Keccak256(slotBE[:]))
}

func toArray(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}
