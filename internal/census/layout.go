package census

import (
	"github.com/vk/tilegen/internal/channel"
	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/rrnode"
	"github.com/vk/tilegen/internal/segment"
)

// AxisLayout is the channel geometry of one routing axis.
//
// The axis has Lines parallel channels (rows for CHANX, columns for CHANY).
// Each channel is cut into positions First..Last along the axis; the first
// position sits on the backward border, the last on the forward border, and
// the rest are interior. Every position of every line shares the track list
// of its representative, which is what makes the graph tileable.
type AxisLayout struct {
	Type      rrnode.Type
	Lines     int
	First     int
	Last      int
	Width     int
	MaxSegLen int
	Backward  device.Side
	Forward   device.Side
}

// Positions is the number of channel positions per line.
func (a AxisLayout) Positions() int {
	return a.Last - a.First + 1
}

// Tracks is the number of tracks every channel of the axis actually has,
// the requested Width rounded up to even.
func (a AxisLayout) Tracks() int {
	return channel.RoundWidth(a.Width)
}

// SideAt returns the border side of the channel at position p.
func (a AxisLayout) SideAt(p int) device.Side {
	switch p {
	case a.First:
		return a.Backward
	case a.Last:
		return a.Forward
	}
	return device.Interior
}

// ChanXLayout returns the geometry of the horizontal channels of a
// width x height device: rows 0..height-2, positions 1..width-2.
func ChanXLayout(width, height, chanWidth int) (AxisLayout, error) {
	if err := checkDims(width, height); err != nil {
		return AxisLayout{}, err
	}
	return AxisLayout{
		Type:      rrnode.ChanX,
		Lines:     height - 1,
		First:     1,
		Last:      width - 2,
		Width:     chanWidth,
		MaxSegLen: width - 2,
		Backward:  device.Left,
		Forward:   device.Right,
	}, nil
}

// ChanYLayout returns the geometry of the vertical channels of a
// width x height device: columns 0..width-2, positions 1..height-2.
func ChanYLayout(width, height, chanWidth int) (AxisLayout, error) {
	if err := checkDims(width, height); err != nil {
		return AxisLayout{}, err
	}
	return AxisLayout{
		Type:      rrnode.ChanY,
		Lines:     width - 1,
		First:     1,
		Last:      height - 2,
		Width:     chanWidth,
		MaxSegLen: height - 2,
		Backward:  device.Bottom,
		Forward:   device.Top,
	}, nil
}

func checkDims(width, height int) error {
	if width < 3 || height < 3 {
		return fabricerr.Config("census.Layout", "", "device %dx%d leaves no room for routing channels", width, height)
	}
	return nil
}

// Representatives builds the track list of every distinct channel kind of
// the axis, keyed by border side.
func (a AxisLayout) Representatives(segs []segment.Descriptor) (map[device.Side]*channel.Details, error) {
	reps := make(map[device.Side]*channel.Details, 3)
	for _, side := range []device.Side{a.Backward, a.Forward, device.Interior} {
		d, err := channel.Build(a.Width, a.MaxSegLen, side, segs)
		if err != nil {
			return nil, err
		}
		reps[side] = d
	}
	return reps, nil
}

// StartNodes predicts how many nodes the axis contributes: each
// representative's starting tracks times the positions it stands for.
func (a AxisLayout) StartNodes(reps map[device.Side]*channel.Details) int {
	n := a.Positions()
	perLine := reps[a.Backward].NumStartTracks()
	if n >= 2 {
		perLine += reps[a.Forward].NumStartTracks()
	}
	if n > 2 {
		perLine += (n - 2) * reps[device.Interior].NumStartTracks()
	}
	return a.Lines * perLine
}
