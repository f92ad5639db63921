// Copyright 2025 Certen Protocol
//
// Batch orchestration. A straightforward, order-preserving
// loop over circuit.Processor.Process: each witness is independent, a
// failed witness never affects its neighbors, and results come back in
// input order.

package batch

import (
	"sync"

	"github.com/google/uuid"
	"github.com/timewave-computer/traverse/pkg/circuit"
)

// Item is one witness to process, paired with the MPT root it should be
// checked against (the root is caller-supplied per witness; see
// pkg/circuit for why the wire witness carries no root field itself).
type Item struct {
	Witness []byte
	Root    [32]byte
}

// Result is one batch's outcome: a stable identifier plus the per-witness
// circuit.Result slice, in the same order as the input Items.
type Result struct {
	BatchID uuid.UUID
	Results []circuit.Result
}

// Process runs p.Process over every item in order. A failing witness
// produces an Invalid circuit.Result at its index and does not affect any
// other item.
func Process(p *circuit.Processor, items []Item) Result {
	out := make([]circuit.Result, len(items))
	for i, item := range items {
		out[i] = p.Process(item.Witness, item.Root)
	}
	return Result{BatchID: uuid.New(), Results: out}
}

// ProcessParallel is the concurrent counterpart of Process: per-witness
// operations commute, so results can be computed by a fixed
// worker pool and written into their input slot directly — no result
// channel or reordering step is needed.
func ProcessParallel(p *circuit.Processor, items []Item, workers int) Result {
	if workers <= 0 || workers > len(items) {
		workers = len(items)
	}
	out := make([]circuit.Result, len(items))
	if workers == 0 {
		return Result{BatchID: uuid.New(), Results: out}
	}

	indices := make(chan int, len(items))
	for i := range items {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				out[i] = p.Process(items[i].Witness, items[i].Root)
			}
		}()
	}
	wg.Wait()

	return Result{BatchID: uuid.New(), Results: out}
}

// ValidCount reports how many results in r succeeded.
func (r Result) ValidCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Valid {
			n++
		}
	}
	return n
}
