// Package schema holds the HCL block structures of an architecture file.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the top-level structure of an architecture file. Every block type
// may appear in any file of a multi-file description.
type File struct {
	Devices       []*Device       `hcl:"device,block"`
	Segments      []*Segment      `hcl:"segment,block"`
	Tiles         []*Tile         `hcl:"tile,block"`
	Layouts       []*Layout       `hcl:"layout,block"`
	CircuitModels []*CircuitModel `hcl:"circuit_model,block"`
	Muxes         []*Mux          `hcl:"mux,block"`
	Verilog       []*Verilog      `hcl:"verilog,block"`
	Body          hcl.Body        `hcl:",remain"`
}

// Device represents the `device` block.
type Device struct {
	Width       int    `hcl:"width"`
	Height      int    `hcl:"height"`
	ChanWidthX  int    `hcl:"chan_width_x"`
	ChanWidthY  int    `hcl:"chan_width_y"`
	SwitchBlock string `hcl:"switch_block,optional"`
}

// Segment represents a `segment` block.
type Segment struct {
	Name      string `hcl:"name,label"`
	Length    int    `hcl:"length"`
	Frequency int    `hcl:"frequency"`
	Longline  bool   `hcl:"longline,optional"`
}

// Tile represents a `tile` block.
type Tile struct {
	Name   string `hcl:"name,label"`
	Class  string `hcl:"class,optional"`
	Height *int   `hcl:"height,optional"`
	Pins   []*Pin `hcl:"pin,block"`
}

// Pin represents a `pin` block within a tile. Fc is either a number (a
// fraction of the channel width) or an object `{ abs = N }`.
type Pin struct {
	Name   string         `hcl:"name,label"`
	Type   string         `hcl:"type"`
	Count  *int           `hcl:"count,optional"`
	Sides  []string       `hcl:"sides"`
	Offset int            `hcl:"offset,optional"`
	Fc     hcl.Expression `hcl:"fc,optional"`
}

// Layout represents the `layout` block.
type Layout struct {
	Perimeter string    `hcl:"perimeter,optional"`
	Corners   string    `hcl:"corners,optional"`
	Fill      string    `hcl:"fill,optional"`
	Singles   []*Single `hcl:"single,block"`
}

// Single represents an explicit tile placement within the layout.
type Single struct {
	Tile string `hcl:"tile,label"`
	X    int    `hcl:"x"`
	Y    int    `hcl:"y"`
}

// CircuitModel represents a `circuit_model` block.
type CircuitModel struct {
	Name       string `hcl:"name,label"`
	Technology string `hcl:"technology"`
	Structure  string `hcl:"structure,optional"`
	NumLevels  int    `hcl:"num_levels,optional"`
	ConstInput bool   `hcl:"const_input,optional"`
}

// Mux represents a `mux` block. Path is the bareword `default` or an input
// index; leaving it out means `default`.
type Mux struct {
	Name  string         `hcl:"name,label"`
	Model string         `hcl:"model"`
	Size  int            `hcl:"size"`
	Path  hcl.Expression `hcl:"path,optional"`
}

// Verilog represents the `verilog` block.
type Verilog struct {
	Flags []string `hcl:"flags,optional"`
}
