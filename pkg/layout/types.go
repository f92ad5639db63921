// Copyright 2025 Certen Protocol
//
// Canonical storage layout data model.

package layout

import (
	"github.com/timewave-computer/traverse/pkg/semantics"
)

// Encoding identifies the interpretation of a Scalar type's bytes.
type Encoding uint8

const (
	EncodingUint Encoding = iota
	EncodingInt
	EncodingAddress
	EncodingBool
	EncodingBytesN
)

func (e Encoding) String() string {
	switch e {
	case EncodingUint:
		return "uint"
	case EncodingInt:
		return "int"
	case EncodingAddress:
		return "address"
	case EncodingBool:
		return "bool"
	case EncodingBytesN:
		return "bytesN"
	default:
		return "unknown"
	}
}

// Kind tags the shape a TypeInfo describes.
type Kind uint8

const (
	KindScalar Kind = iota
	KindDynamicBytes
	KindString
	KindFixedArray
	KindDynamicArray
	KindMapping
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindDynamicBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedArray:
		return "fixed_array"
	case KindDynamicArray:
		return "dynamic_array"
	case KindMapping:
		return "mapping"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// StructMember is one field of a Struct TypeInfo, laid out in declared
// order; Offset is the byte offset of the member's own storage location
// from the start of the struct (not a byte offset within a shared slot).
type StructMember struct {
	Label  string
	Offset uint64
	Type   string
}

// TypeInfo is a tagged record covering the Solidity-style shapes the
// resolver must handle. Only the fields relevant to Kind are
// populated; the rest are zero.
type TypeInfo struct {
	Kind Kind

	// Scalar
	Size     int // bytes, 1..=32
	Encoding Encoding

	// FixedArray / DynamicArray
	Element string
	Length  uint64 // FixedArray only

	// Mapping
	Key   string
	Value string

	// Struct
	Members []StructMember
}

// StorageEntry is one declared storage slot of a contract.
type StorageEntry struct {
	Label         string
	Slot          string // decimal string, 0..=2^256-1
	Offset        uint32 // byte offset 0..=31 within the slot
	TypeName      string
	ZeroSemantics semantics.ZeroSemantics
}

// LayoutInfo captures one contract's storage schema.
type LayoutInfo struct {
	ContractName string
	Storage      []StorageEntry
	Types        map[string]TypeInfo
}
