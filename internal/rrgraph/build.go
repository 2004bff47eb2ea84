package rrgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/tilegen/internal/census"
	"github.com/vk/tilegen/internal/channel"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/fc"
	"github.com/vk/tilegen/internal/rrnode"
	"github.com/vk/tilegen/internal/sbpattern"
)

// Build assembles the graph described by spec. Warnings are returned even
// when they are the only thing worth reporting; an error means no graph.
func Build(ctx context.Context, spec Spec) (*Graph, Warnings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assembling routing-resource graph.", "width", spec.Width, "height", spec.Height)

	kind, err := sbpattern.Parse(spec.SwitchBlock)
	if err != nil {
		return nil, nil, err
	}
	grid, err := device.BuildGrid(spec.Width, spec.Height, spec.Tiles, spec.Layout)
	if err != nil {
		return nil, nil, err
	}

	counts, err := census.Count(ctx, grid, spec.ChanWidthX, spec.ChanWidthY, spec.Segments)
	if err != nil {
		return nil, nil, fmt.Errorf("taking node census: %w", err)
	}
	chanX, err := census.ChanXLayout(spec.Width, spec.Height, spec.ChanWidthX)
	if err != nil {
		return nil, nil, err
	}
	chanY, err := census.ChanYLayout(spec.Width, spec.Height, spec.ChanWidthY)
	if err != nil {
		return nil, nil, err
	}

	g := &Graph{
		arena:       NewArena(counts.Total()),
		grid:        grid,
		census:      counts,
		switchBlock: kind,
		chanX:       chanX,
		chanY:       chanY,
		lookup:      make(map[lookupKey]rrnode.ID, counts.Total()),
		sbPeers:     make(map[rrnode.Type][]int, 2),
		fcActual:    make(map[fcKey]int),
	}

	if err := g.populatePins(); err != nil {
		return nil, nil, err
	}
	for _, axis := range []census.AxisLayout{chanX, chanY} {
		if err := g.populateChannel(axis, spec); err != nil {
			return nil, nil, err
		}
	}
	if err := g.verify(); err != nil {
		return nil, nil, err
	}

	warnings := g.resolveFc(ctx, spec)

	for _, axis := range []census.AxisLayout{chanX, chanY} {
		peers, err := sbpattern.Table(axis.Tracks(), kind)
		if err != nil {
			return nil, nil, err
		}
		g.sbPeers[axis.Type] = peers
	}

	for i, c := range spec.Connectors {
		if err := c.Connect(ctx, g); err != nil {
			return nil, warnings, fmt.Errorf("connector %d: %w", i, err)
		}
	}

	logger.Info("Routing-resource graph assembled.",
		"nodes", g.Len(), "edges", g.NumEdges(), "warnings", len(warnings))
	return g, warnings, nil
}

func (g *Graph) add(n rrnode.Node, x, y int) (rrnode.ID, error) {
	id, err := g.arena.Add(n)
	if err != nil {
		return 0, err
	}
	g.lookup[lookupKey{typ: n.Type, x: x, y: y, ptc: n.Ptc, side: n.Side}] = id
	return id, nil
}

func (g *Graph) populatePins() error {
	return g.grid.Each(func(x, y int, p device.Placement) error {
		if p.IsEmpty() || !p.IsOrigin() {
			return nil
		}
		sides, err := g.grid.PinSides(x, y, p)
		if err != nil {
			return err
		}
		for _, side := range sides {
			for offset := 0; offset < p.Tile.Height; offset++ {
				if err := g.addPins(p.Tile, x, y+offset, offset, side); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (g *Graph) addPins(t *device.TileType, x, y, offset int, side device.Side) error {
	pinNode := func(typ rrnode.Type, ptc int) rrnode.Node {
		return rrnode.Node{Type: typ, XLow: x, XHigh: x, YLow: y, YHigh: y, Ptc: ptc, Side: side, Tile: t.Name}
	}
	for _, ptc := range t.SidePins(device.Driver, offset, side) {
		opin, err := g.add(pinNode(rrnode.OPin, ptc), x, y)
		if err != nil {
			return err
		}
		source, err := g.add(pinNode(rrnode.Source, ptc), x, y)
		if err != nil {
			return err
		}
		if err := g.arena.AddEdge(source, opin); err != nil {
			return err
		}
	}
	for _, ptc := range t.SidePins(device.Receiver, offset, side) {
		ipin, err := g.add(pinNode(rrnode.IPin, ptc), x, y)
		if err != nil {
			return err
		}
		sink, err := g.add(pinNode(rrnode.Sink, ptc), x, y)
		if err != nil {
			return err
		}
		if err := g.arena.AddEdge(ipin, sink); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) populateChannel(axis census.AxisLayout, spec Spec) error {
	reps, err := axis.Representatives(spec.Segments)
	if err != nil {
		return err
	}
	for line := 0; line < axis.Lines; line++ {
		for p := axis.First; p <= axis.Last; p++ {
			for _, tr := range reps[axis.SideAt(p)].Tracks() {
				if !tr.IsStart {
					continue
				}
				low, high := p, min(p+tr.Length-1, axis.Last)
				if tr.Direction == channel.Decreasing {
					low, high = max(p-tr.Length+1, axis.First), p
				}
				n := rrnode.Node{
					Type:      axis.Type,
					Ptc:       tr.Index,
					Side:      device.Interior,
					Direction: tr.Direction,
					Segment:   tr.Segment,
				}
				x, y := p, line
				if axis.Type == rrnode.ChanX {
					n.XLow, n.XHigh, n.YLow, n.YHigh = low, high, line, line
				} else {
					n.XLow, n.XHigh, n.YLow, n.YHigh = line, line, low, high
					x, y = line, p
				}
				if _, err := g.add(n, x, y); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Graph) verify() error {
	if g.arena.Len() != g.arena.Cap() {
		return fabricerr.Invariant("rrgraph.Build", "", "populated %d nodes, census predicted %d", g.arena.Len(), g.arena.Cap())
	}
	populated := g.arena.CountByType()
	for _, t := range rrnode.Types {
		if populated[t] != g.census[t] {
			return fabricerr.Invariant("rrgraph.Build", t.String(),
				"populated %d nodes, census predicted %d", populated[t], g.census[t])
		}
	}
	return nil
}

// resolveFc clips every pin's Fc to the channel it faces. Left and right
// pins face vertical channels, top and bottom pins horizontal ones.
func (g *Graph) resolveFc(ctx context.Context, spec Spec) Warnings {
	logger := ctxlog.FromContext(ctx)
	var warnings Warnings

	names := make([]string, 0, len(spec.Tiles))
	for name := range spec.Tiles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := spec.Tiles[name]
		for _, pin := range t.Pins {
			for _, side := range pin.Sides {
				width := g.chanX.Tracks()
				if side == device.Left || side == device.Right {
					width = g.chanY.Tracks()
				}
				actual, clipped := fc.Resolve(pin.Fc, width)
				g.fcActual[fcKey{tile: t.Name, pin: pin.Name, side: side}] = actual
				if !clipped {
					continue
				}
				w := Warning{
					Kind:    FcClipped,
					Subject: fmt.Sprintf("%s.%s(%s)", t.Name, pin.Name, side),
					Detail:  fmt.Sprintf("Fc %s exceeds channel width %d", pin.Fc, width),
				}
				if warnings.add(w) {
					logger.Warn("Fc clipped to channel width.", "pin", w.Subject, "fc", pin.Fc.String(), "width", width)
				}
			}
		}
	}
	return warnings
}
