// Copyright 2025 Certen Protocol
//
// Semantic storage proof data model. Immutable after
// construction: a value plus its Merkle inclusion proof plus an explicit
// declaration of what a zero value at that slot means.

package proof

import "github.com/timewave-computer/traverse/pkg/semantics"

// SemanticStorageProof pairs a resolved storage key/value with its MPT
// inclusion proof and zero-semantics declaration. Constructed once per
// (layout, key, block); never mutated thereafter.
type SemanticStorageProof struct {
	key       [32]byte
	value     [32]byte
	proof     [][]byte
	semantics semantics.StorageSemantics
}

// New builds a SemanticStorageProof. proof is copied defensively so the
// caller's slice may be reused or mutated afterward.
func New(key, value [32]byte, mptProof [][]byte, sem semantics.StorageSemantics) SemanticStorageProof {
	cp := make([][]byte, len(mptProof))
	for i, node := range mptProof {
		nodeCopy := make([]byte, len(node))
		copy(nodeCopy, node)
		cp[i] = nodeCopy
	}
	return SemanticStorageProof{key: key, value: value, proof: cp, semantics: sem}
}

func (p SemanticStorageProof) Key() [32]byte { return p.key }

func (p SemanticStorageProof) Value() [32]byte { return p.value }

// Proof returns the ordered RLP node blobs. The returned slice aliases
// internal storage and must not be mutated by the caller.
func (p SemanticStorageProof) Proof() [][]byte { return p.proof }

func (p SemanticStorageProof) Semantics() semantics.StorageSemantics { return p.semantics }
