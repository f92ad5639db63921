// Copyright 2025 Certen Protocol
//
// Circuit processing: validates a witness against a fixed
// layout commitment and field configuration, verifies its MPT inclusion
// proof, and extracts a typed value.
//
// The wire witness carries no root-hash field — the trusted
// state/storage root for a witness's block_height is supplied out of band
// by the caller, mirroring the external proof-supplier contract (which
// hands back state_root/storage_root alongside value and proof).
// Process therefore takes the applicable root explicitly.

package circuit

import (
	"fmt"

	"github.com/timewave-computer/traverse/pkg/mpt"
	"github.com/timewave-computer/traverse/pkg/semantics"
	"github.com/timewave-computer/traverse/pkg/witness"
)

// Processor holds the fixed configuration every witness in a run is
// checked against: the layout commitment it must carry, and the declared
// type/semantics of each field index.
type Processor struct {
	layoutCommitment [32]byte
	fieldTypes       []FieldSpec
	fieldSemantics   []semantics.ZeroSemantics
}

// New constructs a Processor. len(fieldTypes) must equal len(fieldSemantics).
func New(layoutCommitment [32]byte, fieldTypes []FieldSpec, fieldSemantics []semantics.ZeroSemantics) (*Processor, error) {
	if len(fieldTypes) != len(fieldSemantics) {
		return nil, fmt.Errorf("circuit: field_types and field_semantics must have equal length (%d != %d)", len(fieldTypes), len(fieldSemantics))
	}
	return &Processor{
		layoutCommitment: layoutCommitment,
		fieldTypes:       append([]FieldSpec(nil), fieldTypes...),
		fieldSemantics:   append([]semantics.ZeroSemantics(nil), fieldSemantics...),
	}, nil
}

// Process runs the full validation pipeline over one wire-encoded witness, checked
// against the MPT root applicable to its claimed block.
func (p *Processor) Process(raw []byte, root [32]byte) Result {
	w, err := witness.Decode(raw)
	if err != nil {
		return Result{Reason: ReasonDecodeFailure, Err: err}
	}

	if w.LayoutCommitment != p.layoutCommitment {
		return Result{Reason: ReasonLayoutMismatch, FieldIndex: w.FieldIndex,
			Err: fmt.Errorf("circuit: witness layout_commitment does not match processor")}
	}

	if w.StorageKey != w.ExpectedSlot {
		return Result{Reason: ReasonSlotMismatch, FieldIndex: w.FieldIndex,
			Err: fmt.Errorf("circuit: storage_key does not match expected_slot")}
	}

	if int(w.FieldIndex) >= len(p.fieldTypes) {
		return Result{Reason: ReasonFieldIndexOutOfRange, FieldIndex: w.FieldIndex,
			Err: fmt.Errorf("circuit: field_index %d out of range (have %d fields)", w.FieldIndex, len(p.fieldTypes))}
	}

	expected := w.Value
	recovered, err := mpt.Verify(mpt.Std, root, w.StorageKey, &expected, w.ProofBytes)
	if err != nil {
		return Result{Reason: ReasonProofFailure, FieldIndex: w.FieldIndex, Err: err}
	}

	fieldSpec := p.fieldTypes[w.FieldIndex]
	typed, err := extract(fieldSpec, recovered)
	if err != nil {
		return Result{Reason: ReasonTypeViolation, FieldIndex: w.FieldIndex, Err: err}
	}

	// A never-written address field whose value is zero is a valid,
	// informational assertion, not an error — the semantic tag was already
	// absorbed into the layout commitment.
	untouched := fieldSpec.Type == FieldAddress &&
		p.fieldSemantics[w.FieldIndex] == semantics.NeverWritten &&
		recovered == [32]byte{}

	return Result{Valid: true, FieldIndex: w.FieldIndex, Value: typed, UntouchedSlot: untouched}
}
