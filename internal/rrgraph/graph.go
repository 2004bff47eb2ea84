package rrgraph

import (
	"context"

	"github.com/vk/tilegen/internal/census"
	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/rrnode"
	"github.com/vk/tilegen/internal/sbpattern"
	"github.com/vk/tilegen/internal/segment"
)

// Spec is everything the assembler needs to know about the fabric.
type Spec struct {
	Width       int
	Height      int
	ChanWidthX  int
	ChanWidthY  int
	SwitchBlock string
	Segments    []segment.Descriptor
	Tiles       map[string]*device.TileType
	Layout      device.Layout
	Connectors  []Connector
}

// Connector adds connectivity to a finished graph.
type Connector interface {
	Connect(ctx context.Context, g *Graph) error
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context, g *Graph) error

// Connect calls f(ctx, g).
func (f ConnectorFunc) Connect(ctx context.Context, g *Graph) error {
	return f(ctx, g)
}

type lookupKey struct {
	typ  rrnode.Type
	x, y int
	ptc  int
	side device.Side
}

type fcKey struct {
	tile, pin string
	side      device.Side
}

// Graph is an assembled routing-resource graph. Its node set is final; only
// edges may still be added.
type Graph struct {
	arena       *Arena
	grid        *device.Grid
	census      rrnode.Counts
	switchBlock sbpattern.Kind
	chanX       census.AxisLayout
	chanY       census.AxisLayout
	lookup      map[lookupKey]rrnode.ID
	sbPeers     map[rrnode.Type][]int
	fcActual    map[fcKey]int
}

// Len is the number of nodes.
func (g *Graph) Len() int { return g.arena.Len() }

// NumEdges is the number of edges.
func (g *Graph) NumEdges() int { return g.arena.NumEdges() }

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id rrnode.ID) (rrnode.Node, error) { return g.arena.Node(id) }

// AddEdge records a signal path between two existing nodes.
func (g *Graph) AddEdge(from, to rrnode.ID) error { return g.arena.AddEdge(from, to) }

// Fanout returns the nodes driven by id.
func (g *Graph) Fanout(id rrnode.ID) ([]rrnode.ID, error) { return g.arena.Fanout(id) }

// Census returns the node counts predicted before allocation.
func (g *Graph) Census() rrnode.Counts { return g.census }

// CountByType returns the populated node counts.
func (g *Graph) CountByType() rrnode.Counts { return g.arena.CountByType() }

// Grid returns the device grid the graph was built on.
func (g *Graph) Grid() *device.Grid { return g.grid }

// SwitchBlock returns the switch-block pattern of the fabric.
func (g *Graph) SwitchBlock() sbpattern.Kind { return g.switchBlock }

// Axis returns the channel geometry of a channel category.
func (g *Graph) Axis(t rrnode.Type) (census.AxisLayout, error) {
	switch t {
	case rrnode.ChanX:
		return g.chanX, nil
	case rrnode.ChanY:
		return g.chanY, nil
	}
	return census.AxisLayout{}, fabricerr.Config("rrgraph.Graph.Axis", t.String(), "not a channel type")
}

// Lookup finds a node by category, cell, pin or track index, and side.
// Channel nodes are found at the cell where their wire starts with side
// device.Interior.
func (g *Graph) Lookup(t rrnode.Type, x, y, ptc int, side device.Side) (rrnode.ID, bool) {
	id, ok := g.lookup[lookupKey{typ: t, x: x, y: y, ptc: ptc, side: side}]
	return id, ok
}

// SwitchBlockPeers returns, per track of a channel category, the track it
// continues on across a switch block.
func (g *Graph) SwitchBlockPeers(t rrnode.Type) []int {
	peers := g.sbPeers[t]
	out := make([]int, len(peers))
	copy(out, peers)
	return out
}

// PinFc returns how many tracks a pin on the given side of a tile connects
// to after clipping.
func (g *Graph) PinFc(tile, pin string, side device.Side) (int, bool) {
	n, ok := g.fcActual[fcKey{tile: tile, pin: pin, side: side}]
	return n, ok
}
