package bitstream

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/muxlib"
)

// Query asks for the bitstream of one multiplexer instance.
type Query struct {
	Mux   string
	Model string
	Size  int
	Path  int
}

// Result is the answer to a Query.
type Result struct {
	Query Query
	Bits  Bits
}

// EncodeAll answers queries concurrently against a frozen library, with at
// most workers queries in flight. Results keep the order of queries. The
// first failure cancels the remaining queries.
func EncodeAll(ctx context.Context, catalog *circuit.Catalog, lib *muxlib.Library, queries []Query, workers int) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Encoding mux bitstreams.", "queries", len(queries), "workers", workers)

	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			model, err := catalog.Lookup(q.Model)
			if err != nil {
				return fmt.Errorf("mux %s: %w", q.Mux, err)
			}
			bits, err := Encode(ctxlog.With(gctx, "mux", q.Mux), model, lib, q.Size, q.Path)
			if err != nil {
				return fmt.Errorf("mux %s: %w", q.Mux, err)
			}
			results[i] = Result{Query: q, Bits: bits}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Mux bitstreams encoded.", "count", len(results))
	return results, nil
}
