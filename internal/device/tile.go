package device

import (
	"fmt"

	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/fc"
)

// EmptyTileName is the reserved name of the tile with no pins.
const EmptyTileName = "EMPTY"

// Class is the coarse kind of a tile type.
type Class int

const (
	ClassEmpty Class = iota
	ClassIO
	ClassLogic
)

func (c Class) String() string {
	switch c {
	case ClassEmpty:
		return "empty"
	case ClassIO:
		return "io"
	case ClassLogic:
		return "logic"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// ParseClass maps a tile class name from an architecture file.
func ParseClass(name string) (Class, error) {
	switch name {
	case "io":
		return ClassIO, nil
	case "logic", "":
		return ClassLogic, nil
	case "empty":
		return ClassEmpty, nil
	}
	return ClassEmpty, fabricerr.Config("device.ParseClass", name, "unknown tile class")
}

// PinClass tells whether a pin drives the routing (OPIN) or receives from it
// (IPIN).
type PinClass int

const (
	Driver PinClass = iota
	Receiver
)

func (c PinClass) String() string {
	if c == Driver {
		return "driver"
	}
	return "receiver"
}

// ParsePinClass maps a pin type name from an architecture file.
func ParsePinClass(name string) (PinClass, error) {
	switch name {
	case "driver", "output":
		return Driver, nil
	case "receiver", "input":
		return Receiver, nil
	}
	return Driver, fabricerr.Config("device.ParsePinClass", name, "unknown pin type")
}

// Pin is a group of Count identical pins that appear on every side in Sides
// at height offset Offset of their tile.
type Pin struct {
	Name   string
	Class  PinClass
	Count  int
	Offset int
	Sides  []Side
	Fc     fc.Spec
}

// OnSide reports whether the pin group is present on side s.
func (p Pin) OnSide(s Side) bool {
	for _, ps := range p.Sides {
		if ps == s {
			return true
		}
	}
	return false
}

// TileType is a placeable block of the fabric.
type TileType struct {
	Name   string
	Class  Class
	Height int
	Pins   []Pin
}

// Empty returns the reserved empty tile type.
func Empty() *TileType {
	return &TileType{Name: EmptyTileName, Class: ClassEmpty, Height: 1}
}

// Validate checks pin offsets against the tile height.
func (t *TileType) Validate() error {
	if t.Height < 1 {
		return fabricerr.Config("device.TileType.Validate", t.Name, "height must be positive, got %d", t.Height)
	}
	for _, p := range t.Pins {
		if p.Offset < 0 || p.Offset >= t.Height {
			return fabricerr.Config("device.TileType.Validate", t.Name+"."+p.Name,
				"pin offset %d outside tile height %d", p.Offset, t.Height)
		}
		if p.Count < 1 {
			return fabricerr.Config("device.TileType.Validate", t.Name+"."+p.Name, "pin count must be positive")
		}
	}
	return nil
}

// SidePins returns the tile-level indices of every pin of class c located at
// offset on side s. Pin indices enumerate all pins of the tile in declaration
// order, expanding each group by its Count.
func (t *TileType) SidePins(c PinClass, offset int, s Side) []int {
	var pins []int
	index := 0
	for _, p := range t.Pins {
		if p.Class == c && p.Offset == offset && p.OnSide(s) {
			for i := 0; i < p.Count; i++ {
				pins = append(pins, index+i)
			}
		}
		index += p.Count
	}
	return pins
}

// CountPins returns how many pin instances of class c the tile exposes on the
// given sides, over all of its height offsets.
func (t *TileType) CountPins(c PinClass, sides []Side) int {
	n := 0
	for offset := 0; offset < t.Height; offset++ {
		for _, s := range sides {
			n += len(t.SidePins(c, offset, s))
		}
	}
	return n
}
