package device

import (
	"fmt"

	"github.com/vk/tilegen/internal/fabricerr"
)

// Placement is what occupies one grid cell: a tile type and the cell's height
// offset inside that tile (non-zero for the upper cells of tall tiles).
type Placement struct {
	Tile   *TileType
	Offset int
}

// IsOrigin reports whether the cell is the bottom cell of its tile.
func (p Placement) IsOrigin() bool {
	return p.Offset == 0
}

// IsEmpty reports whether the cell holds no block.
func (p Placement) IsEmpty() bool {
	return p.Tile == nil || p.Tile.Class == ClassEmpty
}

// Grid is the owned width x height arrangement of tile placements, including
// the IO ring. Cell (0, 0) is the bottom-left corner.
type Grid struct {
	width  int
	height int
	cells  []Placement
}

// NewGrid returns a grid with every cell empty.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fabricerr.Config("device.NewGrid", fmt.Sprintf("%dx%d", width, height), "grid dimensions must be positive")
	}
	g := &Grid{width: width, height: height, cells: make([]Placement, width*height)}
	empty := Empty()
	for i := range g.cells {
		g.cells[i] = Placement{Tile: empty}
	}
	return g, nil
}

// Width is the number of columns.
func (g *Grid) Width() int { return g.width }

// Height is the number of rows.
func (g *Grid) Height() int { return g.height }

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, fabricerr.Bounds("device.Grid", fmt.Sprintf("(%d,%d)", x, y), "outside %dx%d grid", g.width, g.height)
	}
	return y*g.width + x, nil
}

// At returns the placement at (x, y).
func (g *Grid) At(x, y int) (Placement, error) {
	i, err := g.index(x, y)
	if err != nil {
		return Placement{}, err
	}
	return g.cells[i], nil
}

// Set stores a placement at (x, y).
func (g *Grid) Set(x, y int, p Placement) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.cells[i] = p
	return nil
}

// Place puts tile t with its origin at (x, y), filling the cells above it for
// tall tiles.
func (g *Grid) Place(t *TileType, x, y int) error {
	for offset := 0; offset < t.Height; offset++ {
		if err := g.Set(x, y+offset, Placement{Tile: t, Offset: offset}); err != nil {
			return fmt.Errorf("placing %s at (%d,%d): %w", t.Name, x, y, err)
		}
	}
	return nil
}

// Each calls fn for every cell, column by column (x-major, then y).
func (g *Grid) Each(fn func(x, y int, p Placement) error) error {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if err := fn(x, y, g.cells[y*g.width+x]); err != nil {
				return err
			}
		}
	}
	return nil
}

// PinSides returns the sides whose pins a placement at (x, y) contributes to
// the routing graph: all four for ordinary tiles, only the fabric-facing one
// for IO tiles.
func (g *Grid) PinSides(x, y int, p Placement) ([]Side, error) {
	if p.Tile.Class != ClassIO {
		return Sides, nil
	}
	side, err := IOSide(g.width, g.height, x, y)
	if err != nil {
		return nil, fmt.Errorf("tile %s: %w", p.Tile.Name, err)
	}
	return []Side{side}, nil
}
