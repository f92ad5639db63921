// Copyright 2025 Certen Protocol

package witness

import (
	"bytes"
	"math/big"
	"reflect"
	"testing"

	"github.com/timewave-computer/traverse/pkg/semantics"
)

func sampleWitness() Witness {
	var w Witness
	copy(w.StorageKey[31:], []byte{0x02})
	copy(w.LayoutCommitment[:], bytes.Repeat([]byte{0xAB}, 32))
	// value = 10,000 * 10^6 = 10_000_000_000
	v := big.NewInt(10_000_000_000)
	vb := v.Bytes()
	copy(w.Value[32-len(vb):], vb)
	w.ZeroSemantics = semantics.NeverWritten
	w.ProofBytes = nil
	w.BlockHeight = 18_000_000
	w.ExpectedSlot = w.StorageKey
	w.FieldIndex = 0
	return w
}

// The wire encoding must round-trip bytewise.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	w := sampleWitness()
	encoded := Encode(w)

	if len(encoded) != fixedOverhead {
		t.Fatalf("encoded length = %d, want %d (empty proof)", len(encoded), fixedOverhead)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, w) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", decoded, w)
	}
}

func TestEncodeDecode_RoundTripWithProof(t *testing.T) {
	w := sampleWitness()
	w.ProofBytes = []byte{0xc2, 0x80, 0x80, 0xde, 0xad, 0xbe, 0xef}
	encoded := Encode(w)

	if len(encoded) != fixedOverhead+len(w.ProofBytes) {
		t.Fatalf("encoded length = %d, want %d", len(encoded), fixedOverhead+len(w.ProofBytes))
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded.ProofBytes, w.ProofBytes) {
		t.Fatalf("proof bytes mismatch: got %x want %x", decoded.ProofBytes, w.ProofBytes)
	}
	decoded.ProofBytes = nil
	w.ProofBytes = nil
	if !reflect.DeepEqual(decoded, w) {
		t.Fatalf("round trip mismatch (sans proof):\n got  %+v\n want %+v", decoded, w)
	}
}

func TestDecode_TooShort(t *testing.T) {
	if _, err := Decode(make([]byte, fixedOverhead-1)); err != ErrTooShort {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestDecode_ProofLenMismatch(t *testing.T) {
	w := sampleWitness()
	w.ProofBytes = []byte{0x01, 0x02, 0x03}
	encoded := Encode(w)
	truncated := encoded[:len(encoded)-1]
	if _, err := Decode(truncated); err != ErrProofLenMismatch {
		t.Fatalf("expected ErrProofLenMismatch, got %v", err)
	}
}

func TestDecode_InvalidZeroTag(t *testing.T) {
	w := sampleWitness()
	encoded := Encode(w)
	encoded[offZeroSemantics] = 4 // outside 0..3
	if _, err := Decode(encoded); err != ErrInvalidZeroTag {
		t.Fatalf("expected ErrInvalidZeroTag, got %v", err)
	}
}

func TestEncodeAllDecodeAll_RoundTrip(t *testing.T) {
	w1 := sampleWitness()
	w2 := sampleWitness()
	w2.FieldIndex = 1
	w2.ProofBytes = []byte{0xaa, 0xbb}

	stream := EncodeAll([]Witness{w1, w2})
	decoded, err := DecodeAll(stream)
	if err != nil {
		t.Fatalf("decode all: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 witnesses, got %d", len(decoded))
	}
	if !reflect.DeepEqual(decoded[0], w1) {
		t.Fatalf("witness 0 mismatch")
	}
	if decoded[1].FieldIndex != 1 || !bytes.Equal(decoded[1].ProofBytes, w2.ProofBytes) {
		t.Fatalf("witness 1 mismatch: %+v", decoded[1])
	}
}
