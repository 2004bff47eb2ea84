// Package census predicts, before any allocation, exactly how many nodes of
// each category the tileable routing-resource graph will contain.
package census

import (
	"context"

	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/rrnode"
	"github.com/vk/tilegen/internal/segment"
)

// Count walks the grid and the channel geometry and returns the node count of
// every category. The assembler must instantiate exactly these numbers.
func Count(ctx context.Context, grid *device.Grid, chanWidthX, chanWidthY int, segs []segment.Descriptor) (rrnode.Counts, error) {
	logger := ctxlog.FromContext(ctx)
	var counts rrnode.Counts

	err := grid.Each(func(x, y int, p device.Placement) error {
		if p.IsEmpty() || !p.IsOrigin() {
			return nil
		}
		sides, err := grid.PinSides(x, y, p)
		if err != nil {
			return err
		}
		counts[rrnode.OPin] += p.Tile.CountPins(device.Driver, sides)
		counts[rrnode.IPin] += p.Tile.CountPins(device.Receiver, sides)
		return nil
	})
	if err != nil {
		return counts, err
	}
	counts[rrnode.Source] = counts[rrnode.OPin]
	counts[rrnode.Sink] = counts[rrnode.IPin]

	xLayout, err := ChanXLayout(grid.Width(), grid.Height(), chanWidthX)
	if err != nil {
		return counts, err
	}
	yLayout, err := ChanYLayout(grid.Width(), grid.Height(), chanWidthY)
	if err != nil {
		return counts, err
	}
	for _, axis := range []AxisLayout{xLayout, yLayout} {
		reps, err := axis.Representatives(segs)
		if err != nil {
			return counts, err
		}
		counts[axis.Type] = axis.StartNodes(reps)
	}

	logger.Debug("Node census complete.",
		"source", counts[rrnode.Source], "sink", counts[rrnode.Sink],
		"ipin", counts[rrnode.IPin], "opin", counts[rrnode.OPin],
		"chanx", counts[rrnode.ChanX], "chany", counts[rrnode.ChanY],
		"total", counts.Total(),
	)
	return counts, nil
}
