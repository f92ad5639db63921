// Copyright 2025 Certen Protocol
//
// Textual schema loading. The canonicaliser itself operates only on the
// in-memory LayoutInfo; this file turns either YAML or JSON into that
// in-memory form.

package layout

import (
	"encoding/json"
	"fmt"

	"github.com/timewave-computer/traverse/pkg/semantics"
	"gopkg.in/yaml.v3"
)

type wireStructMember struct {
	Label  string `yaml:"label" json:"label"`
	Offset uint64 `yaml:"offset" json:"offset"`
	Type   string `yaml:"type" json:"type"`
}

type wireTypeInfo struct {
	Kind     string             `yaml:"kind" json:"kind"`
	Size     int                `yaml:"size,omitempty" json:"size,omitempty"`
	Encoding string             `yaml:"encoding,omitempty" json:"encoding,omitempty"`
	Element  string             `yaml:"element,omitempty" json:"element,omitempty"`
	Length   uint64             `yaml:"length,omitempty" json:"length,omitempty"`
	Key      string             `yaml:"key,omitempty" json:"key,omitempty"`
	Value    string             `yaml:"value,omitempty" json:"value,omitempty"`
	Members  []wireStructMember `yaml:"members,omitempty" json:"members,omitempty"`
}

type wireStorageEntry struct {
	Label         string `yaml:"label" json:"label"`
	Slot          string `yaml:"slot" json:"slot"`
	Offset        uint32 `yaml:"offset" json:"offset"`
	Type          string `yaml:"type" json:"type"`
	ZeroSemantics string `yaml:"zero_semantics" json:"zero_semantics"`
}

type wireLayout struct {
	ContractName string                  `yaml:"contract_name" json:"contract_name"`
	Storage      []wireStorageEntry      `yaml:"storage" json:"storage"`
	Types        map[string]wireTypeInfo `yaml:"types" json:"types"`
}

// LoadYAML parses a YAML-encoded layout schema.
func LoadYAML(data []byte) (LayoutInfo, error) {
	var w wireLayout
	if err := yaml.Unmarshal(data, &w); err != nil {
		return LayoutInfo{}, fmt.Errorf("layout: parse yaml: %w", err)
	}
	return fromWire(w)
}

// LoadJSON parses a JSON-encoded layout schema.
func LoadJSON(data []byte) (LayoutInfo, error) {
	var w wireLayout
	if err := json.Unmarshal(data, &w); err != nil {
		return LayoutInfo{}, fmt.Errorf("layout: parse json: %w", err)
	}
	return fromWire(w)
}

func fromWire(w wireLayout) (LayoutInfo, error) {
	types := make(map[string]TypeInfo, len(w.Types))
	for name, wt := range w.Types {
		typ, err := typeFromWire(wt)
		if err != nil {
			return LayoutInfo{}, fmt.Errorf("layout: type %q: %w", name, err)
		}
		types[name] = typ
	}

	storage := make([]StorageEntry, 0, len(w.Storage))
	for _, we := range w.Storage {
		tag, err := semantics.ParseZeroSemantics(we.ZeroSemantics)
		if err != nil {
			return LayoutInfo{}, fmt.Errorf("layout: entry %q: %w", we.Label, err)
		}
		storage = append(storage, StorageEntry{
			Label:         we.Label,
			Slot:          we.Slot,
			Offset:        we.Offset,
			TypeName:      we.Type,
			ZeroSemantics: tag,
		})
	}

	return LayoutInfo{
		ContractName: w.ContractName,
		Storage:      storage,
		Types:        types,
	}, nil
}

func typeFromWire(w wireTypeInfo) (TypeInfo, error) {
	switch w.Kind {
	case "scalar":
		enc, err := encodingFromWire(w.Encoding)
		if err != nil {
			return TypeInfo{}, err
		}
		return TypeInfo{Kind: KindScalar, Size: w.Size, Encoding: enc}, nil
	case "bytes":
		return TypeInfo{Kind: KindDynamicBytes}, nil
	case "string":
		return TypeInfo{Kind: KindString}, nil
	case "fixed_array":
		return TypeInfo{Kind: KindFixedArray, Element: w.Element, Length: w.Length}, nil
	case "dynamic_array":
		return TypeInfo{Kind: KindDynamicArray, Element: w.Element}, nil
	case "mapping":
		return TypeInfo{Kind: KindMapping, Key: w.Key, Value: w.Value}, nil
	case "struct":
		members := make([]StructMember, 0, len(w.Members))
		for _, m := range w.Members {
			members = append(members, StructMember{Label: m.Label, Offset: m.Offset, Type: m.Type})
		}
		return TypeInfo{Kind: KindStruct, Members: members}, nil
	default:
		return TypeInfo{}, fmt.Errorf("unknown type kind %q", w.Kind)
	}
}

func encodingFromWire(s string) (Encoding, error) {
	switch s {
	case "uint":
		return EncodingUint, nil
	case "int":
		return EncodingInt, nil
	case "address":
		return EncodingAddress, nil
	case "bool":
		return EncodingBool, nil
	case "bytesN":
		return EncodingBytesN, nil
	default:
		return 0, fmt.Errorf("unknown scalar encoding %q", s)
	}
}
