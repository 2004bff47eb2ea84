package hcl

import (
	"context"
	"sort"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/config"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/schema"
	"github.com/vk/tilegen/internal/segment"
)

// translator merges decoded files into one model.
type translator struct {
	model    *config.Model
	device   *schema.Device
	layout   *schema.Layout
	segments map[string]bool
	circuits map[string]bool
	muxes    map[string]bool
}

func newTranslator() *translator {
	return &translator{
		model:    &config.Model{Tiles: make(map[string]*device.TileType)},
		segments: make(map[string]bool),
		circuits: make(map[string]bool),
		muxes:    make(map[string]bool),
	}
}

func duplicate(kind, name string) error {
	return fabricerr.Config("hcl.Load", name, "%s declared more than once", kind)
}

func (tr *translator) merge(ctx context.Context, root *schema.File) error {
	logger := ctxlog.FromContext(ctx)

	for _, d := range root.Devices {
		if tr.device != nil {
			return duplicate("device block", "device")
		}
		tr.device = d
	}
	for _, lay := range root.Layouts {
		if tr.layout != nil {
			return duplicate("layout block", "layout")
		}
		tr.layout = lay
	}

	for _, s := range root.Segments {
		if tr.segments[s.Name] {
			return duplicate("segment", s.Name)
		}
		tr.segments[s.Name] = true
		desc := segment.Descriptor{Name: s.Name, Length: s.Length, Frequency: s.Frequency, Longline: s.Longline}
		if err := desc.Validate(); err != nil {
			return err
		}
		tr.model.Segments = append(tr.model.Segments, desc)
	}

	for _, t := range root.Tiles {
		if _, dup := tr.model.Tiles[t.Name]; dup || t.Name == device.EmptyTileName {
			return duplicate("tile", t.Name)
		}
		tile, err := translateTile(ctx, t)
		if err != nil {
			return err
		}
		tr.model.Tiles[t.Name] = tile
	}

	for _, cm := range root.CircuitModels {
		if tr.circuits[cm.Name] {
			return duplicate("circuit model", cm.Name)
		}
		tr.circuits[cm.Name] = true
		m, err := translateCircuitModel(cm)
		if err != nil {
			return err
		}
		if m.Technology == circuit.TechnologyUnknown {
			logger.Debug("Circuit model has an unrecognized technology.", "model", m.Name, "technology", cm.Technology)
		}
		tr.model.CircuitModels = append(tr.model.CircuitModels, m)
	}

	for _, mux := range root.Muxes {
		if tr.muxes[mux.Name] {
			return duplicate("mux", mux.Name)
		}
		tr.muxes[mux.Name] = true
		path, err := decodePath(ctx, mux.Path, mux.Name)
		if err != nil {
			return err
		}
		tr.model.Muxes = append(tr.model.Muxes, config.Mux{Name: mux.Name, Model: mux.Model, Size: mux.Size, Path: path})
	}

	for _, v := range root.Verilog {
		tr.model.VerilogFlags = append(tr.model.VerilogFlags, v.Flags...)
	}
	return nil
}

func (tr *translator) finish() (*config.Model, error) {
	if tr.device == nil {
		return nil, fabricerr.Config("hcl.Load", "device", "no device block found")
	}
	d := tr.device
	tr.model.Device = config.Device{
		Width:       d.Width,
		Height:      d.Height,
		ChanWidthX:  d.ChanWidthX,
		ChanWidthY:  d.ChanWidthY,
		SwitchBlock: d.SwitchBlock,
	}
	if tr.model.Device.SwitchBlock == "" {
		tr.model.Device.SwitchBlock = "disjoint"
	}

	if tr.layout != nil {
		lay := device.Layout{Perimeter: tr.layout.Perimeter, Corners: tr.layout.Corners, Fill: tr.layout.Fill}
		for _, s := range tr.layout.Singles {
			lay.Singles = append(lay.Singles, device.Single{Tile: s.Tile, X: s.X, Y: s.Y})
		}
		tr.model.Layout = lay
	}

	sort.Slice(tr.model.Muxes, func(i, j int) bool { return tr.model.Muxes[i].Name < tr.model.Muxes[j].Name })
	return tr.model, nil
}

func translateTile(ctx context.Context, t *schema.Tile) (*device.TileType, error) {
	class, err := device.ParseClass(t.Class)
	if err != nil {
		return nil, err
	}
	tile := &device.TileType{Name: t.Name, Class: class, Height: 1}
	if t.Height != nil {
		tile.Height = *t.Height
	}

	for _, p := range t.Pins {
		subject := t.Name + "." + p.Name
		pc, err := device.ParsePinClass(p.Type)
		if err != nil {
			return nil, err
		}
		pin := device.Pin{Name: p.Name, Class: pc, Count: 1, Offset: p.Offset}
		if p.Count != nil {
			pin.Count = *p.Count
		}
		for _, name := range p.Sides {
			s, err := device.ParseSide(name)
			if err != nil {
				return nil, err
			}
			pin.Sides = append(pin.Sides, s)
		}
		if len(pin.Sides) == 0 {
			return nil, fabricerr.Config("hcl.Load", subject, "pin must sit on at least one side")
		}
		pin.Fc, err = decodeFc(ctx, p.Fc, subject)
		if err != nil {
			return nil, err
		}
		tile.Pins = append(tile.Pins, pin)
	}
	return tile, nil
}

func translateCircuitModel(cm *schema.CircuitModel) (circuit.Model, error) {
	structure := circuit.OneLevel
	if cm.Structure != "" {
		s, err := circuit.ParseStructure(cm.Structure)
		if err != nil {
			return circuit.Model{}, err
		}
		structure = s
	}
	return circuit.Model{
		Name:              cm.Name,
		Technology:        circuit.ParseTechnology(cm.Technology),
		TechnologyName:    cm.Technology,
		Structure:         structure,
		NumLevels:         cm.NumLevels,
		AddsConstantInput: cm.ConstInput,
	}, nil
}
