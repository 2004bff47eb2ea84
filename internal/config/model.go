package config

import (
	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/rrgraph"
	"github.com/vk/tilegen/internal/segment"
)

// Model is the unified, format-agnostic representation of an architecture.
type Model struct {
	Device        Device
	Segments      []segment.Descriptor
	Tiles         map[string]*device.TileType
	Layout        device.Layout
	CircuitModels []circuit.Model
	Muxes         []Mux
	VerilogFlags  []string
}

// Device holds the outer dimensions and routing parameters of the fabric.
type Device struct {
	Width       int
	Height      int
	ChanWidthX  int
	ChanWidthY  int
	SwitchBlock string
}

// Mux is one multiplexer instance whose configuration bits are requested.
// Path is an input index, or bitstream.DefaultPath.
type Mux struct {
	Name  string
	Model string
	Size  int
	Path  int
}

// GraphSpec returns the assembler input described by the model.
func (m *Model) GraphSpec() rrgraph.Spec {
	return rrgraph.Spec{
		Width:       m.Device.Width,
		Height:      m.Device.Height,
		ChanWidthX:  m.Device.ChanWidthX,
		ChanWidthY:  m.Device.ChanWidthY,
		SwitchBlock: m.Device.SwitchBlock,
		Segments:    m.Segments,
		Tiles:       m.Tiles,
		Layout:      m.Layout,
	}
}

// Validate checks cross-references the loader cannot check block by block.
func (m *Model) Validate() error {
	if m.Device.ChanWidthX < 0 {
		return fabricerr.Config("config.Validate", "chan_width_x", "channel width %d is negative", m.Device.ChanWidthX)
	}
	if m.Device.ChanWidthY < 0 {
		return fabricerr.Config("config.Validate", "chan_width_y", "channel width %d is negative", m.Device.ChanWidthY)
	}
	if len(m.Segments) == 0 {
		return fabricerr.Config("config.Validate", "segment", "at least one segment type is required")
	}
	if err := segment.CheckScale(max(m.Device.ChanWidthX, m.Device.ChanWidthY), m.Segments); err != nil {
		return err
	}
	models := make(map[string]circuit.Model, len(m.CircuitModels))
	for _, cm := range m.CircuitModels {
		models[cm.Name] = cm
	}
	for _, mux := range m.Muxes {
		cm, ok := models[mux.Model]
		if !ok {
			return fabricerr.Config("config.Validate", mux.Name, "mux references undefined circuit model %q", mux.Model)
		}
		if mux.Size < 1 || cm.ImplementedSize(mux.Size) < 2 {
			return fabricerr.Config("config.Validate", mux.Name, "mux of size %d has fewer than 2 inputs", mux.Size)
		}
	}
	return nil
}
