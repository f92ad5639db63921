// Copyright 2025 Certen Protocol

package proof

import (
	"reflect"
	"testing"

	"github.com/timewave-computer/traverse/pkg/semantics"
)

func TestNew_Accessors(t *testing.T) {
	key := [32]byte{1}
	value := [32]byte{2}
	mptProof := [][]byte{{0xAA, 0xBB}, {0xCC}}
	sem := semantics.New(semantics.ValidZero)

	p := New(key, value, mptProof, sem)

	if p.Key() != key {
		t.Errorf("Key() = %x, want %x", p.Key(), key)
	}
	if p.Value() != value {
		t.Errorf("Value() = %x, want %x", p.Value(), value)
	}
	if !reflect.DeepEqual(p.Proof(), mptProof) {
		t.Errorf("Proof() = %v, want %v", p.Proof(), mptProof)
	}
	if p.Semantics().Declared() != semantics.ValidZero {
		t.Errorf("Semantics().Declared() = %v, want ValidZero", p.Semantics().Declared())
	}
}

func TestNew_ProofIsDefensivelyCopied(t *testing.T) {
	key := [32]byte{1}
	value := [32]byte{2}
	original := [][]byte{{0x01, 0x02}}
	sem := semantics.New(semantics.NeverWritten)

	p := New(key, value, original, sem)

	original[0][0] = 0xFF
	if p.Proof()[0][0] == 0xFF {
		t.Errorf("mutating the caller's input slice affected the proof's stored copy")
	}
}

func TestNew_NilProofIsAccepted(t *testing.T) {
	key := [32]byte{9}
	value := [32]byte{8}
	sem := semantics.New(semantics.Cleared)

	p := New(key, value, nil, sem)
	if len(p.Proof()) != 0 {
		t.Errorf("expected an empty proof, got %v", p.Proof())
	}
}
