// Copyright 2025 Certen Protocol
//
// Bit-exact witness wire codec. Layout, little-endian fixed
// integers:
//
//	offset  size  field
//	0       32    storage_key
//	32      32    layout_commitment
//	64      32    value
//	96      1     zero_semantics
//	97      4     proof_len (u32 LE)
//	101     N     proof_bytes (N = proof_len)
//	101+N   8     block_height (u64 LE)
//	109+N   32    expected_slot
//	141+N   2     field_index (u16 LE)
//
// fixedOverhead (143) is the sum of every field above except proof_bytes;
// this is the authoritative byte-exact layout the codec follows. A
// decoder must reject any input shorter than fixedOverhead or whose
// length does not equal fixedOverhead+proof_len.

package witness

import (
	"encoding/binary"

	"github.com/timewave-computer/traverse/pkg/semantics"
)

const (
	offStorageKey       = 0
	offLayoutCommitment = 32
	offValue            = 64
	offZeroSemantics    = 96
	offProofLen         = 97
	offProofBytes       = 101

	fixedOverhead = 101 + 8 + 32 + 2 // 143
)

// Encode serialises w into the fixed witness wire format. Total output
// length is fixedOverhead + len(w.ProofBytes).
func Encode(w Witness) []byte {
	n := fixedOverhead + len(w.ProofBytes)
	buf := make([]byte, n)

	copy(buf[offStorageKey:], w.StorageKey[:])
	copy(buf[offLayoutCommitment:], w.LayoutCommitment[:])
	copy(buf[offValue:], w.Value[:])
	buf[offZeroSemantics] = byte(w.ZeroSemantics)
	binary.LittleEndian.PutUint32(buf[offProofLen:], uint32(len(w.ProofBytes)))
	copy(buf[offProofBytes:], w.ProofBytes)

	tailOff := offProofBytes + len(w.ProofBytes)
	binary.LittleEndian.PutUint64(buf[tailOff:], w.BlockHeight)
	copy(buf[tailOff+8:], w.ExpectedSlot[:])
	binary.LittleEndian.PutUint16(buf[tailOff+8+32:], w.FieldIndex)

	return buf
}

// Decode parses a witness from its fixed wire format, rejecting any input
// that does not conform byte-exactly.
func Decode(data []byte) (Witness, error) {
	if len(data) < fixedOverhead {
		return Witness{}, ErrTooShort
	}

	proofLen := binary.LittleEndian.Uint32(data[offProofLen:])
	if uint64(len(data)) != uint64(fixedOverhead)+uint64(proofLen) {
		return Witness{}, ErrProofLenMismatch
	}

	tag := data[offZeroSemantics]
	zs := semantics.ZeroSemantics(tag)
	if !zs.Valid() {
		return Witness{}, ErrInvalidZeroTag
	}

	var w Witness
	copy(w.StorageKey[:], data[offStorageKey:offStorageKey+32])
	copy(w.LayoutCommitment[:], data[offLayoutCommitment:offLayoutCommitment+32])
	copy(w.Value[:], data[offValue:offValue+32])
	w.ZeroSemantics = zs

	proofEnd := offProofBytes + int(proofLen)
	if proofLen > 0 {
		w.ProofBytes = make([]byte, proofLen)
		copy(w.ProofBytes, data[offProofBytes:proofEnd])
	}

	w.BlockHeight = binary.LittleEndian.Uint64(data[proofEnd : proofEnd+8])
	copy(w.ExpectedSlot[:], data[proofEnd+8:proofEnd+8+32])
	w.FieldIndex = binary.LittleEndian.Uint16(data[proofEnd+8+32 : proofEnd+8+32+2])

	return w, nil
}
