// Copyright 2025 Certen Protocol

package batch

import (
	"testing"

	"github.com/timewave-computer/traverse/pkg/circuit"
	"github.com/timewave-computer/traverse/pkg/mpt"
	"github.com/timewave-computer/traverse/pkg/semantics"
	"github.com/timewave-computer/traverse/pkg/witness"
)

func buildItem(t *testing.T, layoutCommitment [32]byte, fieldIndex uint16, value [32]byte) Item {
	t.Helper()

	var key [32]byte
	key[31] = byte(fieldIndex) + 1

	root, proof, err := mpt.BuildSingleLeafTrie(key, value[:])
	if err != nil {
		t.Fatalf("BuildSingleLeafTrie: %v", err)
	}

	w := witness.Witness{
		StorageKey:       key,
		LayoutCommitment: layoutCommitment,
		Value:            value,
		ZeroSemantics:    semantics.NeverWritten,
		ProofBytes:       mpt.ConcatProof(proof),
		BlockHeight:      100,
		ExpectedSlot:     key,
		FieldIndex:       fieldIndex,
	}

	return Item{Witness: witness.Encode(w), Root: root}
}

func newTestProcessor(t *testing.T, layoutCommitment [32]byte) *circuit.Processor {
	t.Helper()
	p, err := circuit.New(
		layoutCommitment,
		[]circuit.FieldSpec{{Type: circuit.FieldUint64}, {Type: circuit.FieldUint64}, {Type: circuit.FieldUint64}},
		[]semantics.ZeroSemantics{semantics.NeverWritten, semantics.NeverWritten, semantics.NeverWritten},
	)
	if err != nil {
		t.Fatalf("circuit.New: %v", err)
	}
	return p
}

func TestProcess_AllValid(t *testing.T) {
	var layoutCommitment [32]byte
	layoutCommitment[0] = 0xAB
	p := newTestProcessor(t, layoutCommitment)

	var v0, v1, v2 [32]byte
	v0[31] = 7
	v1[31] = 8
	v2[31] = 9

	items := []Item{
		buildItem(t, layoutCommitment, 0, v0),
		buildItem(t, layoutCommitment, 1, v1),
		buildItem(t, layoutCommitment, 2, v2),
	}

	res := Process(p, items)
	if res.ValidCount() != 3 {
		t.Fatalf("ValidCount() = %d, want 3", res.ValidCount())
	}
	for i, r := range res.Results {
		if !r.Valid {
			t.Errorf("item %d: Valid = false, Err = %v", i, r.Err)
		}
		if r.FieldIndex != uint16(i) {
			t.Errorf("item %d: FieldIndex = %d, want %d", i, r.FieldIndex, i)
		}
	}
}

func TestProcess_OneBadItemDoesNotAffectOthers(t *testing.T) {
	var layoutCommitment [32]byte
	layoutCommitment[0] = 0xCD
	p := newTestProcessor(t, layoutCommitment)

	var v0, v2 [32]byte
	v0[31] = 1
	v2[31] = 3

	good0 := buildItem(t, layoutCommitment, 0, v0)
	good2 := buildItem(t, layoutCommitment, 2, v2)
	bad1 := Item{Witness: []byte("not a valid witness"), Root: good0.Root}

	items := []Item{good0, bad1, good2}
	res := Process(p, items)

	if !res.Results[0].Valid {
		t.Errorf("item 0 should be valid, got reason %v", res.Results[0].Reason)
	}
	if res.Results[1].Valid {
		t.Errorf("item 1 should be invalid")
	}
	if res.Results[1].Reason != circuit.ReasonDecodeFailure {
		t.Errorf("item 1 reason = %v, want ReasonDecodeFailure", res.Results[1].Reason)
	}
	if !res.Results[2].Valid {
		t.Errorf("item 2 should be valid, got reason %v", res.Results[2].Reason)
	}
	if res.ValidCount() != 2 {
		t.Errorf("ValidCount() = %d, want 2", res.ValidCount())
	}
}

func TestProcessParallel_MatchesSequentialOrder(t *testing.T) {
	var layoutCommitment [32]byte
	layoutCommitment[0] = 0xEF
	p := newTestProcessor(t, layoutCommitment)

	items := make([]Item, 0, 3)
	for i := uint16(0); i < 3; i++ {
		var v [32]byte
		v[31] = byte(i + 1)
		items = append(items, buildItem(t, layoutCommitment, i%3, v))
	}

	seq := Process(p, items)
	par := ProcessParallel(p, items, 4)

	if len(seq.Results) != len(par.Results) {
		t.Fatalf("result length mismatch: %d vs %d", len(seq.Results), len(par.Results))
	}
	for i := range seq.Results {
		if seq.Results[i].Valid != par.Results[i].Valid {
			t.Errorf("index %d: sequential Valid=%v, parallel Valid=%v", i, seq.Results[i].Valid, par.Results[i].Valid)
		}
		if seq.Results[i].FieldIndex != par.Results[i].FieldIndex {
			t.Errorf("index %d: FieldIndex mismatch", i)
		}
	}
}

func TestProcessParallel_EmptyInput(t *testing.T) {
	var layoutCommitment [32]byte
	p := newTestProcessor(t, layoutCommitment)

	res := ProcessParallel(p, nil, 4)
	if len(res.Results) != 0 {
		t.Fatalf("expected no results, got %d", len(res.Results))
	}
	if res.BatchID.String() == "" {
		t.Fatalf("expected a non-empty batch id")
	}
}

func TestProcessParallel_WorkersExceedsItemCount(t *testing.T) {
	var layoutCommitment [32]byte
	layoutCommitment[0] = 0x11
	p := newTestProcessor(t, layoutCommitment)

	var v [32]byte
	v[31] = 42
	items := []Item{buildItem(t, layoutCommitment, 0, v)}

	res := ProcessParallel(p, items, 64)
	if res.ValidCount() != 1 {
		t.Fatalf("ValidCount() = %d, want 1", res.ValidCount())
	}
}
