// Package fc resolves pin fan-in/fan-out (Fc) specifications against a
// concrete channel width.
package fc

import (
	"math"
	"strconv"
)

// Spec is an Fc value: a fraction of the channel width, or an absolute track
// count when Abs is set.
type Spec struct {
	Abs   bool
	Value float64
}

// IsZero reports whether the pin connects to no track at all.
func (s Spec) IsZero() bool {
	return s.Value <= 0
}

func (s Spec) String() string {
	if s.Abs {
		return "abs:" + formatFloat(s.Value)
	}
	return "frac:" + formatFloat(s.Value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Resolve returns the number of tracks a pin with this Fc connects to in a
// channel of the given width. A request above the width is clipped to it and
// reported, never refused.
func Resolve(s Spec, width int) (actual int, clipped bool) {
	if s.IsZero() || width <= 0 {
		return 0, false
	}
	if s.Abs {
		actual = int(math.Ceil(s.Value))
	} else {
		actual = int(math.Ceil(s.Value * float64(width)))
	}
	if actual > width {
		return width, true
	}
	return actual, false
}
