package bff

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"
)

// ParallelApply splits the rows of a frame into contiguous chunks, runs
// fn on every chunk concurrently, and stacks the results back together
// in the original row order with ConcatFrames. It suits row-wise
// transformations that dominate an analysis script's runtime.
//
// fn must be safe for concurrent use and must produce the same column
// set for every chunk. A non-positive workers count uses
// runtime.NumCPU(). The first error cancels the remaining chunks.
func ParallelApply(ctx context.Context, df dataframe.DataFrame, fn func(dataframe.DataFrame) dataframe.DataFrame, workers int) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}
	if fn == nil {
		err := errors.New("fn is required")
		return dataframe.DataFrame{Err: err}, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	n := df.Nrow()
	if n == 0 {
		return df, nil
	}

	sw := NewStopwatch()

	// Partition row indexes with the window engine; step equal to the
	// window size covers every row exactly once, remainder included.
	rowsPerChunk := (n + workers - 1) / workers
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	w, err := SlideSlice(indexes, rowsPerChunk, rowsPerChunk)
	if err != nil {
		return dataframe.DataFrame{Err: err}, err
	}

	results := make([]dataframe.DataFrame, w.Count())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	pos := 0
	for chunk := range w.All() {
		i := pos
		pos++
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			part := df.Subset(chunk)
			if part.Err != nil {
				return fmt.Errorf("taking chunk %d: %w", i, part.Err)
			}
			out := fn(part)
			if out.Err != nil {
				return fmt.Errorf("applying to chunk %d: %w", i, out.Err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dataframe.DataFrame{Err: err}, err
	}

	out := results[0]
	for _, part := range results[1:] {
		out, err = ConcatFrames(out, part)
		if err != nil {
			return dataframe.DataFrame{Err: err}, err
		}
	}

	FromContext(ctx).Debugw("parallel apply complete",
		"rows", n, "chunks", len(results), "workers", workers,
		"elapsed", sw.Elapsed().String())
	return out, nil
}
