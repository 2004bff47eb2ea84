// Package rrnode defines the node records of a routing-resource graph.
package rrnode

import (
	"fmt"

	"github.com/vk/tilegen/internal/channel"
	"github.com/vk/tilegen/internal/device"
)

// Type is the category of a routing-resource node.
type Type int

const (
	Source Type = iota
	Sink
	IPin
	OPin
	ChanX
	ChanY
	// NumTypes is the number of node categories.
	NumTypes
)

// Types lists every category in index order.
var Types = []Type{Source, Sink, IPin, OPin, ChanX, ChanY}

func (t Type) String() string {
	switch t {
	case Source:
		return "SOURCE"
	case Sink:
		return "SINK"
	case IPin:
		return "IPIN"
	case OPin:
		return "OPIN"
	case ChanX:
		return "CHANX"
	case ChanY:
		return "CHANY"
	}
	return fmt.Sprintf("rrtype(%d)", int(t))
}

// IsChannel reports whether the node is a routing track.
func (t Type) IsChannel() bool {
	return t == ChanX || t == ChanY
}

// ID indexes a node inside its graph.
type ID int

// Node is one routing resource. Pin nodes (and their SOURCE/SINK) sit on a
// single cell; channel nodes span [XLow, XHigh] x [YLow, YHigh].
type Node struct {
	Type  Type
	XLow  int
	XHigh int
	YLow  int
	YHigh int
	// Ptc is the pin index for pin, SOURCE and SINK nodes and the track index
	// at the starting position for channel nodes.
	Ptc       int
	Side      device.Side
	Direction channel.Direction
	Segment   int
	Tile      string
}

func (n Node) String() string {
	if n.Type.IsChannel() {
		return fmt.Sprintf("%s[%d,%d..%d,%d].track%d(%s)", n.Type, n.XLow, n.YLow, n.XHigh, n.YHigh, n.Ptc, n.Direction)
	}
	return fmt.Sprintf("%s[%d,%d].%s.pin%d(%s)", n.Type, n.XLow, n.YLow, n.Tile, n.Ptc, n.Side)
}

// Counts holds one number per node category.
type Counts [NumTypes]int

// Total sums every category.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
