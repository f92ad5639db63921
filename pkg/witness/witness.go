// Copyright 2025 Certen Protocol
//
// Witness record data model. A witness is one-shot: produced
// by the setup side, consumed once by the circuit processor, then
// discarded.

package witness

import "github.com/timewave-computer/traverse/pkg/semantics"

// Witness is the logical content of one witness record. ProofBytes is the
// raw concatenation of RLP-encoded trie node blobs with no inner framing
// — boundaries are recovered by sequentially RLP-decoding the
// stream, not by a length table.
type Witness struct {
	StorageKey       [32]byte
	LayoutCommitment [32]byte
	Value            [32]byte
	ZeroSemantics    semantics.ZeroSemantics
	ProofBytes       []byte
	BlockHeight      uint64
	ExpectedSlot     [32]byte
	FieldIndex       uint16
}
