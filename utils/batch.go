package utils

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for the item at Index of the submitted slice.
type BatchResult[T any] struct {
	Index int
	Value T
	Err   error
}

// Batcher partitions work into fixed-size chunks and runs each chunk
// concurrently, waiting for the whole chunk before starting the next one.
type Batcher struct {
	Size int
	// OnBatch, if set, is called before each chunk starts with the chunk
	// number (from 1) and its length.
	OnBatch func(batch, size int)
}

// Chunks returns the chunk sizes a slice of n items is split into.
func Chunks(n, size int) []int {
	if size <= 0 {
		size = 1
	}
	var out []int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, end-start)
	}
	return out
}

// RunBatches applies fn to every item, size items at a time. Errors and panics
// are captured per item and never stop the remaining work. The returned slice
// has one entry per input item, in input order.
func RunBatches[I, O any](ctx context.Context, b Batcher, items []I, fn func(context.Context, I) (O, error)) []BatchResult[O] {
	results := make([]BatchResult[O], len(items))

	start := 0
	for i, n := range Chunks(len(items), b.Size) {
		end := start + n

		if err := ctx.Err(); err != nil {
			for j := start; j < len(items); j++ {
				results[j] = BatchResult[O]{Index: j, Err: err}
			}
			return results
		}

		if b.OnBatch != nil {
			b.OnBatch(i+1, n)
		}

		var g errgroup.Group
		for j := start; j < end; j++ {
			j := j
			g.Go(func() error {
				results[j] = runOne(ctx, j, items[j], fn)
				return nil
			})
		}
		_ = g.Wait()
		start = end
	}
	return results
}

func runOne[I, O any](ctx context.Context, idx int, item I, fn func(context.Context, I) (O, error)) (res BatchResult[O]) {
	res.Index = idx
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("batch item %d panicked: %v", idx, r)
		}
	}()
	res.Value, res.Err = fn(ctx, item)
	return res
}
