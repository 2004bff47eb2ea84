// Package channel builds the ordered track list of one routing channel of a
// unidirectional, tileable fabric.
//
// Tracks come in pairs: one increasing and one decreasing track of the same
// segment type sit next to each other and share their start flag. Inside the
// run of one segment type, every L-th pair starts a new wire, where L is the
// segment's effective length. Channels on a device border override the flags
// so that every wire entering the border ends there and every wire leaving it
// starts there.
package channel

import (
	"fmt"

	"github.com/vk/tilegen/internal/device"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/segment"
)

// Direction is the signal direction of a unidirectional track.
type Direction int

const (
	Increasing Direction = iota
	Decreasing
)

func (d Direction) String() string {
	if d == Increasing {
		return "inc"
	}
	return "dec"
}

// Track is one wire resource of a channel.
type Track struct {
	Index     int
	Direction Direction
	Length    int
	Segment   int
	IsStart   bool
	IsEnd     bool
}

// Details is the ordered track list of a channel.
type Details struct {
	tracks []Track
}

// Width is the number of tracks.
func (d *Details) Width() int {
	return len(d.tracks)
}

// Tracks returns a copy of the track list.
func (d *Details) Tracks() []Track {
	out := make([]Track, len(d.tracks))
	copy(out, d.tracks)
	return out
}

// Track returns the track at index i.
func (d *Details) Track(i int) (Track, error) {
	if i < 0 || i >= len(d.tracks) {
		return Track{}, fabricerr.Bounds("channel.Details.Track", fmt.Sprint(i), "channel has %d tracks", len(d.tracks))
	}
	return d.tracks[i], nil
}

// NumStartTracks counts the tracks where a wire begins. Each of them becomes
// exactly one routing-graph node per channel position.
func (d *Details) NumStartTracks() int {
	n := 0
	for _, t := range d.tracks {
		if t.IsStart {
			n++
		}
	}
	return n
}

// StartTracks returns the indices of the starting tracks with direction dir.
func (d *Details) StartTracks(dir Direction) []int {
	var out []int
	for _, t := range d.tracks {
		if t.IsStart && t.Direction == dir {
			out = append(out, t.Index)
		}
	}
	return out
}

// SetTracksStart makes every track of direction dir start-only.
func (d *Details) SetTracksStart(dir Direction) {
	for i := range d.tracks {
		if d.tracks[i].Direction == dir {
			d.tracks[i].IsStart = true
			d.tracks[i].IsEnd = false
		}
	}
}

// SetTracksEnd makes every track of direction dir end-only.
func (d *Details) SetTracksEnd(dir Direction) {
	for i := range d.tracks {
		if d.tracks[i].Direction == dir {
			d.tracks[i].IsStart = false
			d.tracks[i].IsEnd = true
		}
	}
}

func (d *Details) addTrack(dir Direction, length, seg int, start bool) {
	d.tracks = append(d.tracks, Track{
		Index:     len(d.tracks),
		Direction: dir,
		Length:    length,
		Segment:   seg,
		IsStart:   start,
	})
}

// RoundWidth is the number of tracks a channel of the requested width gets:
// tracks come in increasing/decreasing pairs, so odd widths round up.
func RoundWidth(width int) int {
	if width%2 != 0 {
		return width + 1
	}
	return width
}

// Build creates the track list of a channel of the requested width.
//
// The width is rounded up to an even number. maxSegLength is the effective
// length of longline segments. side is the device border the channel sits on,
// or device.Interior.
func Build(width, maxSegLength int, side device.Side, segs []segment.Descriptor) (*Details, error) {
	if width < 0 {
		return nil, fabricerr.Config("channel.Build", side.String(), "channel width %d is negative", width)
	}
	width = RoundWidth(width)
	d := &Details{tracks: make([]Track, 0, width)}
	if width <= 0 {
		return d, nil
	}

	if err := segment.CheckScale(width/2, segs); err != nil {
		return nil, err
	}
	pairs := segment.Allocate(width/2, segs, true)
	for iseg, s := range segs {
		length := s.Length
		if s.Longline {
			length = maxSegLength
		}
		if length < 1 {
			return nil, fabricerr.Config("channel.Build", s.Name, "effective segment length %d is not positive", length)
		}
		for itrack := 0; itrack < pairs[iseg]; itrack++ {
			start := itrack%length == 0
			d.addTrack(Increasing, length, iseg, start)
			d.addTrack(Decreasing, length, iseg, start)
		}
	}

	if d.Width() != width {
		return nil, fabricerr.Invariant("channel.Build", side.String(),
			"built %d tracks for a channel of width %d", d.Width(), width)
	}

	if err := ApplyBorder(d, side); err != nil {
		return nil, err
	}
	return d, nil
}

// ApplyBorder forces the start/end flags of a channel sitting on a device
// border. It is idempotent.
func ApplyBorder(d *Details, side device.Side) error {
	switch side {
	case device.Top, device.Right:
		d.SetTracksEnd(Increasing)
		d.SetTracksStart(Decreasing)
	case device.Bottom, device.Left:
		d.SetTracksStart(Increasing)
		d.SetTracksEnd(Decreasing)
	case device.Interior:
	default:
		return fabricerr.Config("channel.ApplyBorder", side.String(), "unsupported device side")
	}
	return nil
}
