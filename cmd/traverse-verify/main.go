// Copyright 2025 Certen Protocol
//
// traverse-verify is the reference CLI wiring the storage-proof pipeline
// end to end: it resolves a textual query against a layout schema, or
// verifies a stream of witness records against a known MPT root.

package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/timewave-computer/traverse/pkg/batch"
	"github.com/timewave-computer/traverse/pkg/circuit"
	"github.com/timewave-computer/traverse/pkg/layout"
	"github.com/timewave-computer/traverse/pkg/query"
	"github.com/timewave-computer/traverse/pkg/resolver"
	"github.com/timewave-computer/traverse/pkg/semantics"
	"github.com/timewave-computer/traverse/pkg/witness"
)

func main() {
	log.SetFlags(0)

	var (
		mode       = flag.String("mode", "resolve", "operation to run: resolve | verify")
		layoutPath = flag.String("layout", "", "path to a YAML or JSON storage layout schema")
		queryText  = flag.String("query", "", "textual storage query, e.g. balances[0xabc...]")
		witPath    = flag.String("witness", "", "path to a witness.EncodeAll stream file (verify mode)")
		rootHex    = flag.String("root", "", "hex-encoded 32-byte MPT root all witnesses are checked against (verify mode)")
		workers    = flag.Int("workers", 0, "worker count for verify mode; 0 runs sequentially")
	)
	flag.Parse()

	switch *mode {
	case "resolve":
		runResolve(*layoutPath, *queryText)
	case "verify":
		runVerify(*layoutPath, *witPath, *rootHex, *workers)
	default:
		log.Fatalf("traverse-verify: unknown -mode %q (want resolve or verify)", *mode)
	}
}

func runResolve(layoutPath, queryText string) {
	if layoutPath == "" || queryText == "" {
		log.Fatal("traverse-verify: -layout and -query are required in resolve mode")
	}

	l, commitment := loadLayout(layoutPath)

	path, err := query.Parse(queryText)
	if err != nil {
		log.Fatalf("traverse-verify: parse query: %v", err)
	}

	resolved, err := resolver.Resolve(l, path)
	if err != nil {
		log.Fatalf("traverse-verify: resolve: %v", err)
	}

	entry, _ := findEntry(l, path.FieldLabel)
	out := resolver.ToOutput(queryText, resolved, commitment, entry.ZeroSemantics)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("traverse-verify: encode output: %v", err)
	}
}

func findEntry(l layout.LayoutInfo, label string) (layout.StorageEntry, bool) {
	for _, e := range l.Storage {
		if e.Label == label {
			return e, true
		}
	}
	return layout.StorageEntry{}, false
}

func loadLayout(path string) (layout.LayoutInfo, layout.Commitment) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("traverse-verify: read layout: %v", err)
	}

	var raw layout.LayoutInfo
	if strings.HasSuffix(path, ".json") {
		raw, err = layout.LoadJSON(data)
	} else {
		raw, err = layout.LoadYAML(data)
	}
	if err != nil {
		log.Fatalf("traverse-verify: parse layout: %v", err)
	}

	canon, commitment, err := layout.Canonicalize(raw)
	if err != nil {
		log.Fatalf("traverse-verify: canonicalize layout: %v", err)
	}
	return canon, commitment
}

// runVerify decodes a witness stream and checks every record's MPT
// inclusion proof against root. Every field index is typed as uint256
// with never-written semantics. Without -layout, the first record's own
// layout_commitment becomes the processor's expected commitment (useful
// for ad hoc spot-checks); with -layout, the schema's commitment is
// enforced instead, so a witness carrying a stale commitment is rejected.
func runVerify(layoutPath, witPath, rootHex string, workers int) {
	if witPath == "" || rootHex == "" {
		log.Fatal("traverse-verify: -witness and -root are required in verify mode")
	}

	rootBytes, err := hex.DecodeString(strings.TrimPrefix(rootHex, "0x"))
	if err != nil || len(rootBytes) != 32 {
		log.Fatalf("traverse-verify: -root must be 32 bytes of hex")
	}
	var root [32]byte
	copy(root[:], rootBytes)

	data, err := os.ReadFile(witPath)
	if err != nil {
		log.Fatalf("traverse-verify: read witness stream: %v", err)
	}
	records, err := witness.DecodeAll(data)
	if err != nil {
		log.Fatalf("traverse-verify: decode witness stream: %v", err)
	}
	if len(records) == 0 {
		log.Fatal("traverse-verify: witness stream is empty")
	}

	layoutCommitment := records[0].LayoutCommitment
	if layoutPath != "" {
		_, commitment := loadLayout(layoutPath)
		layoutCommitment = commitment
	}

	maxField := uint16(0)
	for _, w := range records {
		if w.FieldIndex > maxField {
			maxField = w.FieldIndex
		}
	}
	fieldTypes := make([]circuit.FieldSpec, maxField+1)
	fieldSems := make([]semantics.ZeroSemantics, maxField+1)
	for i := range fieldTypes {
		fieldTypes[i] = circuit.FieldSpec{Type: circuit.FieldUint256}
		fieldSems[i] = semantics.NeverWritten
	}

	proc, err := circuit.New(layoutCommitment, fieldTypes, fieldSems)
	if err != nil {
		log.Fatalf("traverse-verify: build processor: %v", err)
	}

	items := make([]batch.Item, len(records))
	for i, rec := range records {
		items[i] = batch.Item{Witness: witness.Encode(rec), Root: root}
	}

	var result batch.Result
	if workers > 0 {
		result = batch.ProcessParallel(proc, items, workers)
	} else {
		result = batch.Process(proc, items)
	}

	fmt.Printf("batch %s: %d/%d valid\n", result.BatchID, result.ValidCount(), len(result.Results))
	for i, r := range result.Results {
		if r.Valid {
			fmt.Printf("  [%d] field=%d OK\n", i, r.FieldIndex)
		} else {
			fmt.Printf("  [%d] field=%d REJECTED reason=%v err=%v\n", i, r.FieldIndex, r.Reason, r.Err)
		}
	}
	if result.ValidCount() != len(result.Results) {
		os.Exit(1)
	}
}
