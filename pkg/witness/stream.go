// Copyright 2025 Certen Protocol
//
// Stream codec for concatenated witnesses: a batch
// producer writes many witnesses back-to-back; each record's own
// proof_len field is enough to find the next record's start, so no outer
// framing is needed.

package witness

import "encoding/binary"

// EncodeAll concatenates the wire encoding of each witness in order.
func EncodeAll(ws []Witness) []byte {
	var out []byte
	for _, w := range ws {
		out = append(out, Encode(w)...)
	}
	return out
}

// DecodeAll splits a concatenated stream back into individual witnesses,
// using each record's proof_len to locate the next record's start.
func DecodeAll(data []byte) ([]Witness, error) {
	var out []Witness
	for len(data) > 0 {
		if len(data) < fixedOverhead {
			return nil, ErrTooShort
		}
		proofLen := binary.LittleEndian.Uint32(data[offProofLen:])
		recordLen := fixedOverhead + int(proofLen)
		if recordLen > len(data) {
			return nil, ErrProofLenMismatch
		}
		w, err := Decode(data[:recordLen])
		if err != nil {
			return nil, err
		}
		out = append(out, w)
		data = data[recordLen:]
	}
	return out, nil
}
