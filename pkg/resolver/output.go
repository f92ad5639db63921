// Copyright 2025 Certen Protocol
//
// Resolver output in the coprocessor-facing shape.

package resolver

import (
	"encoding/hex"

	"github.com/timewave-computer/traverse/pkg/layout"
	"github.com/timewave-computer/traverse/pkg/semantics"
)

// ResolverOutput is the hex-friendly record a setup-side tool emits after
// resolving one query: everything downstream proof-fetching needs, with
// no binary types left for the caller to re-encode.
type ResolverOutput struct {
	Query            string
	StorageKey       string
	LayoutCommitment string
	FieldSize        int
	Offset           *uint32
	ZeroSemantics    semantics.ZeroSemantics
}

// ToOutput packages a resolved key, the query text that produced it, and
// the owning layout's commitment into a ResolverOutput. offset is reported
// only for packed scalars (resolved.Offset != 0 or resolved.Size < 32).
func ToOutput(queryText string, resolved ResolvedKey, commitment layout.Commitment, entryZero semantics.ZeroSemantics) ResolverOutput {
	out := ResolverOutput{
		Query:            queryText,
		StorageKey:       hex.EncodeToString(resolved.Key[:]),
		LayoutCommitment: hex.EncodeToString(commitment[:]),
		FieldSize:        resolved.Size,
		ZeroSemantics:    entryZero,
	}
	if resolved.Type.Kind == layout.KindScalar && (resolved.Offset != 0 || resolved.Size < 32) {
		off := resolved.Offset
		out.Offset = &off
	}
	return out
}
