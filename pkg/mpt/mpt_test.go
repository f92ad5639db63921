// Copyright 2025 Certen Protocol

package mpt

import (
	"bytes"
	"testing"
)

func key(b byte) [32]byte {
	var k [32]byte
	k[31] = b
	return k
}

func value32(n int64) [32]byte {
	var v [32]byte
	x := n
	for i := 31; i >= 0 && x != 0; i-- {
		v[i] = byte(x & 0xff)
		x >>= 8
	}
	return v
}

func TestVerify_SingleLeaf(t *testing.T) {
	k := key(0x02)
	v := value32(42)
	root, proof, err := BuildSingleLeafTrie(k, trimLeadingZeros(v[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got, err := Verify(Std, root, k, &v, ConcatProof(proof))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != v {
		t.Fatalf("value = %x, want %x", got, v)
	}
}

func TestVerify_SingleLeaf_Constrained(t *testing.T) {
	k := key(0x09)
	v := value32(7)
	root, proof, err := BuildSingleLeafTrie(k, trimLeadingZeros(v[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got, err := Verify(Constrained, root, k, &v, ConcatProof(proof))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != v {
		t.Fatalf("value = %x, want %x", got, v)
	}
}

func TestVerify_TwoLeafBranch(t *testing.T) {
	var keyA, keyB [32]byte
	keyA[0] = 0x10 // first nibble 1
	keyB[0] = 0x20 // first nibble 2
	valA := value32(100)
	valB := value32(200)

	root, proofA, proofB, err := BuildTwoLeafTrie(keyA, keyB, trimLeadingZeros(valA[:]), trimLeadingZeros(valB[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	gotA, err := Verify(Std, root, keyA, &valA, ConcatProof(proofA))
	if err != nil {
		t.Fatalf("verify A: %v", err)
	}
	if gotA != valA {
		t.Fatalf("value A = %x, want %x", gotA, valA)
	}

	gotB, err := Verify(Std, root, keyB, &valB, ConcatProof(proofB))
	if err != nil {
		t.Fatalf("verify B: %v", err)
	}
	if gotB != valB {
		t.Fatalf("value B = %x, want %x", gotB, valB)
	}
}

func TestVerify_ExtensionNode(t *testing.T) {
	var keyA, keyB [32]byte
	keyA[0] = 0x41
	keyA[1] = 0x10 // nibbles 4,1,1,0,...
	keyB[0] = 0x41
	keyB[1] = 0x70 // nibbles 4,1,7,0,...
	valA := value32(11)
	valB := value32(22)

	root, proofA, proofB, err := BuildExtensionTrie(keyA, keyB, trimLeadingZeros(valA[:]), trimLeadingZeros(valB[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	gotA, err := Verify(Std, root, keyA, &valA, ConcatProof(proofA))
	if err != nil {
		t.Fatalf("verify A: %v", err)
	}
	if gotA != valA {
		t.Fatalf("value A = %x, want %x", gotA, valA)
	}

	gotB, err := Verify(Constrained, root, keyB, &valB, ConcatProof(proofB))
	if err != nil {
		t.Fatalf("verify B: %v", err)
	}
	if gotB != valB {
		t.Fatalf("value B = %x, want %x", gotB, valB)
	}

	// A key outside the shared prefix must diverge at the extension.
	var other [32]byte
	other[0] = 0x51
	if _, err := Verify(Std, root, other, nil, ConcatProof(proofA)); err != ErrPathDivergence {
		t.Fatalf("expected ErrPathDivergence, got %v", err)
	}
}

func TestVerify_HashMismatch(t *testing.T) {
	k := key(0x02)
	v := value32(42)
	root, proof, err := BuildSingleLeafTrie(k, trimLeadingZeros(v[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	root[0] ^= 0xff // corrupt the root

	if _, err := Verify(Std, root, k, &v, ConcatProof(proof)); err != ErrHashMismatch {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestVerify_WrongValue(t *testing.T) {
	k := key(0x02)
	v := value32(42)
	wrong := value32(43)
	root, proof, err := BuildSingleLeafTrie(k, trimLeadingZeros(v[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if _, err := Verify(Std, root, k, &wrong, ConcatProof(proof)); err != ErrValueMismatch {
		t.Fatalf("expected ErrValueMismatch, got %v", err)
	}
}

func TestVerify_KeyNotPresent(t *testing.T) {
	var keyA, keyB [32]byte
	keyA[0] = 0x10
	keyB[0] = 0x20
	valA := value32(100)
	valB := value32(200)

	root, proofA, _, err := BuildTwoLeafTrie(keyA, keyB, trimLeadingZeros(valA[:]), trimLeadingZeros(valB[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var other [32]byte
	other[0] = 0x30 // nibble 3: empty branch slot
	if _, err := Verify(Std, root, other, nil, ConcatProof(proofA)); err != ErrKeyNotPresent {
		t.Fatalf("expected ErrKeyNotPresent, got %v", err)
	}
}

func TestVerify_MalformedProof(t *testing.T) {
	k := key(0x02)
	v := value32(42)
	root, proof, err := BuildSingleLeafTrie(k, trimLeadingZeros(v[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	garbage := append(bytes.Clone(proof[0]), 0xff, 0xff)

	if _, err := Verify(Std, root, k, &v, garbage); err == nil {
		t.Fatalf("expected an error for malformed/truncated proof bytes")
	}
}

func TestVerify_NoExpectedValue(t *testing.T) {
	k := key(0x02)
	v := value32(42)
	root, proof, err := BuildSingleLeafTrie(k, trimLeadingZeros(v[:]))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got, err := Verify(Std, root, k, nil, ConcatProof(proof))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != v {
		t.Fatalf("value = %x, want %x", got, v)
	}
}
