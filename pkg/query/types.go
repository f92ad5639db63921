// Copyright 2025 Certen Protocol
//
// Parsed query data model.

package query

import "math/big"

// StepKind distinguishes a bracket step from a member-access step. The
// parser cannot tell a mapping-key bracket from an array-index bracket —
// that depends on the layout, and the parser never consults the layout —
// so both cases share the Bracket kind and carry whatever
// the resolver (C3) needs for either interpretation.
type StepKind uint8

const (
	StepBracket StepKind = iota
	StepMember
)

// Literal is the parsed content of a bracket step: `[hex-literal]` or
// `[decimal]`.
type Literal struct {
	// Hex is true if the source token was 0x-prefixed.
	Hex bool
	// Bytes is the literal's minimal big-endian byte representation as
	// written (hex: the decoded hex digits; decimal: the minimal
	// big-endian encoding of Value). Used as a mapping-key literal.
	Bytes []byte
	// Value is the literal interpreted as an unsigned integer. Used as
	// an array index.
	Value *big.Int
}

// Step is one element of an AccessPath's path.
type Step struct {
	Kind    StepKind
	Literal Literal // valid when Kind == StepBracket
	Member  string  // valid when Kind == StepMember
}

// AccessPath is a parsed query: a root field label plus an ordered
// sequence of steps.
type AccessPath struct {
	FieldLabel string
	Steps      []Step
}
