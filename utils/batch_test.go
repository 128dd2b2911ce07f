package utils

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		n, size int
		want    []int
	}{
		{12, 5, []int{5, 5, 2}},
		{10, 5, []int{5, 5}},
		{3, 10, []int{3}},
		{0, 5, nil},
		{2, 0, []int{1, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Chunks(tt.n, tt.size), "Chunks(%d, %d)", tt.n, tt.size)
	}
}

func TestRunBatchesSizesAndOrder(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	var mu sync.Mutex
	var sizes []int
	b := Batcher{Size: 5, OnBatch: func(_, size int) {
		mu.Lock()
		sizes = append(sizes, size)
		mu.Unlock()
	}}

	results := RunBatches(context.Background(), b, items, func(_ context.Context, n int) (int, error) {
		// later items finish first inside a batch
		time.Sleep(time.Duration(12-n) * time.Millisecond)
		if n%4 == 3 {
			return 0, errors.New("boom")
		}
		return n * 10, nil
	})

	assert.Equal(t, []int{5, 5, 2}, sizes)
	require.Len(t, results, 12)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		if i%4 == 3 {
			assert.Error(t, r.Err)
			continue
		}
		assert.NoError(t, r.Err)
		assert.Equal(t, i*10, r.Value)
	}
}

func TestRunBatchesAwaitsChunkBeforeNext(t *testing.T) {
	items := make([]int, 7)
	var inFlight, peak int64

	RunBatches(context.Background(), Batcher{Size: 3}, items, func(_ context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak, int64(3))
}

func TestRunBatchesRecoversPanic(t *testing.T) {
	results := RunBatches(context.Background(), Batcher{Size: 2}, []string{"a", "b", "c"}, func(_ context.Context, s string) (string, error) {
		if s == "b" {
			panic("bad record")
		}
		return s, nil
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorContains(t, results[1].Err, "panicked")
	assert.Equal(t, "c", results[2].Value)
}

func TestRunBatchesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	results := RunBatches(ctx, Batcher{Size: 2}, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		atomic.AddInt64(&calls, 1)
		return n, nil
	})

	assert.Zero(t, calls)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
