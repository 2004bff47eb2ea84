package app

import (
	"context"
	"fmt"

	"github.com/vk/tilegen/internal/bitstream"
	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/muxlib"
	"github.com/vk/tilegen/internal/report"
	"github.com/vk/tilegen/internal/rrgraph"
)

// Result is what a run produced.
type Result struct {
	Graph      *rrgraph.Graph
	Warnings   rrgraph.Warnings
	Library    *muxlib.Library
	Bitstreams []bitstream.Result
	Summary    report.Summary
}

// Run executes the generation pipeline.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, warnings, err := rrgraph.Build(ctx, a.arch.GraphSpec())
	if err != nil {
		return nil, fmt.Errorf("failed to assemble routing-resource graph: %w", err)
	}

	catalog, err := circuit.NewCatalog(a.arch.CircuitModels...)
	if err != nil {
		return nil, err
	}
	lib, err := a.buildLibrary(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to build mux library: %w", err)
	}

	queries := make([]bitstream.Query, 0, len(a.arch.Muxes))
	for _, m := range a.arch.Muxes {
		queries = append(queries, bitstream.Query{Mux: m.Name, Model: m.Model, Size: m.Size, Path: m.Path})
	}
	bits, err := bitstream.EncodeAll(ctx, catalog, lib, queries, a.config.WorkerCount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bitstreams: %w", err)
	}

	res := &Result{
		Graph:      graph,
		Warnings:   warnings,
		Library:    lib,
		Bitstreams: bits,
		Summary: report.Summary{
			Architecture: a.config.ArchPath,
			Width:        a.arch.Device.Width,
			Height:       a.arch.Device.Height,
			Census:       graph.Census(),
			Nodes:        graph.Len(),
			Edges:        graph.NumEdges(),
			Warnings:     warnings,
			Bitstreams:   bits,
		},
	}

	if a.config.OutDir != "" {
		if err := a.writeOutputs(ctx, res.Summary); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Fabric generation finished.",
		"nodes", graph.Len(),
		"warnings", len(warnings),
		"muxes", len(bits),
		"library_entries", lib.Len(),
	)
	a.logger.Debug("App.Run method finished.")
	return res, nil
}

// buildLibrary creates every mux graph the queries need, then freezes the
// library before any query runs.
func (a *App) buildLibrary(ctx context.Context, catalog *circuit.Catalog) (*muxlib.Library, error) {
	logger := ctxlog.FromContext(ctx)
	builder := muxlib.NewBuilder()
	for _, m := range a.arch.Muxes {
		model, err := catalog.Lookup(m.Model)
		if err != nil {
			return nil, err
		}
		if model.Technology != circuit.CMOS {
			continue
		}
		if err := builder.Add(model, model.ImplementedSize(m.Size)); err != nil {
			return nil, err
		}
	}
	lib := builder.Freeze()
	logger.Debug("Mux library frozen.", "entries", lib.Len())
	return lib, nil
}
