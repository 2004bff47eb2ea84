package device

import (
	"fmt"
	"strings"

	"github.com/vk/tilegen/internal/fabricerr"
)

// Side names a side of a tile or of the whole device. Interior is the
// sentinel for a channel that does not sit on a device border.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
	// Interior is also the number of real sides.
	Interior
)

// Sides lists the four real sides in their canonical order.
var Sides = []Side{Top, Right, Bottom, Left}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Interior:
		return "interior"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// ParseSide maps a side name from an architecture file.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(name) {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	}
	return Interior, fabricerr.Config("device.ParseSide", name, "unknown side")
}

// IOSide returns the only side an IO tile at (x, y) exposes pins on: the side
// facing into the fabric from the outer edge it sits on. An IO tile that
// touches no outer edge is an unsupported configuration.
func IOSide(width, height, x, y int) (Side, error) {
	switch {
	case y == height-1:
		return Bottom, nil
	case x == width-1:
		return Left, nil
	case y == 0:
		return Top, nil
	case x == 0:
		return Right, nil
	}
	return Interior, fabricerr.Config("device.IOSide", fmt.Sprintf("(%d,%d)", x, y),
		"IO tile in the interior of a %dx%d device is unsupported", width, height)
}
