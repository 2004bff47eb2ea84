// Package sbpattern maps a track entering a switch block to the track it
// connects to on the opposite channel.
package sbpattern

import (
	"fmt"
	"strings"

	"github.com/vk/tilegen/internal/fabricerr"
)

// Kind is a switch-block connection pattern.
type Kind int

const (
	Disjoint Kind = iota
	Universal
	Wilton
)

func (k Kind) String() string {
	switch k {
	case Disjoint:
		return "disjoint"
	case Universal:
		return "universal"
	case Wilton:
		return "wilton"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Parse maps a switch-block name from an architecture file.
func Parse(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "disjoint":
		return Disjoint, nil
	case "universal":
		return Universal, nil
	case "wilton":
		return Wilton, nil
	}
	return Disjoint, fabricerr.Config("sbpattern.Parse", name, "unsupported switch block")
}

// Peer returns the track that track connects to in a channel of the given
// width.
func Peer(track, width int, kind Kind) (int, error) {
	if track < 0 || track >= width {
		return 0, fabricerr.Bounds("sbpattern.Peer", fmt.Sprint(track), "channel has %d tracks", width)
	}
	switch kind {
	case Disjoint:
		return track, nil
	case Universal:
		return width - 1 - track, nil
	case Wilton:
		return (track + 1) % width, nil
	}
	return 0, fabricerr.Config("sbpattern.Peer", kind.String(), "unsupported switch block")
}

// Table returns Peer for every track of a channel.
func Table(width int, kind Kind) ([]int, error) {
	peers := make([]int, width)
	for i := range peers {
		p, err := Peer(i, width, kind)
		if err != nil {
			return nil, err
		}
		peers[i] = p
	}
	return peers, nil
}
