package device

import (
	"fmt"

	"github.com/vk/tilegen/internal/fabricerr"
)

// Single is an explicit placement of a tile with its origin at (X, Y).
type Single struct {
	Tile string
	X    int
	Y    int
}

// Layout describes how the grid is filled: the four corners, the rest of the
// outer ring, every remaining cell, then explicit placements on top.
type Layout struct {
	Corners   string
	Perimeter string
	Fill      string
	Singles   []Single
}

// BuildGrid materializes a width x height grid from the tile catalog and a
// layout. The reserved EMPTY tile resolves even when the catalog omits it.
func BuildGrid(width, height int, tiles map[string]*TileType, layout Layout) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	lookup := func(name string) (*TileType, error) {
		if name == "" || name == EmptyTileName {
			return Empty(), nil
		}
		t, ok := tiles[name]
		if !ok {
			return nil, fabricerr.Config("device.BuildGrid", name, "layout references an undefined tile")
		}
		return t, nil
	}

	corner, err := lookup(layout.Corners)
	if err != nil {
		return nil, err
	}
	perimeter, err := lookup(layout.Perimeter)
	if err != nil {
		return nil, err
	}
	fill, err := lookup(layout.Fill)
	if err != nil {
		return nil, err
	}
	for _, t := range []*TileType{corner, perimeter, fill} {
		if t.Height != 1 {
			return nil, fabricerr.Config("device.BuildGrid", t.Name, "only single-cell tiles may be used as corners, perimeter or fill")
		}
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			onX := x == 0 || x == width-1
			onY := y == 0 || y == height-1
			t := fill
			switch {
			case onX && onY:
				t = corner
			case onX || onY:
				t = perimeter
			}
			if err := g.Set(x, y, Placement{Tile: t}); err != nil {
				return nil, err
			}
		}
	}

	occupied := make(map[[2]int]string)
	for _, s := range layout.Singles {
		t, err := lookup(s.Tile)
		if err != nil {
			return nil, err
		}
		for offset := 0; offset < t.Height; offset++ {
			cell := [2]int{s.X, s.Y + offset}
			if prev, taken := occupied[cell]; taken {
				return nil, fabricerr.Config("device.BuildGrid", s.Tile,
					"placement at (%d,%d) overlaps %s", cell[0], cell[1], prev)
			}
			occupied[cell] = fmt.Sprintf("%s@(%d,%d)", s.Tile, s.X, s.Y)
		}
		if err := g.Place(t, s.X, s.Y); err != nil {
			return nil, fabricerr.Config("device.BuildGrid", s.Tile, "%v", err)
		}
	}

	return g, nil
}
