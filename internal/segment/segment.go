// Package segment describes routing segment types and distributes a channel's
// track budget across them in proportion to their declared frequency.
package segment

import (
	"math"
	"math/bits"

	"github.com/vk/tilegen/internal/fabricerr"
)

// Descriptor is one routing segment type of the architecture.
type Descriptor struct {
	Name      string
	Length    int
	Frequency int
	Longline  bool
}

// Validate rejects descriptors the allocator cannot scale.
func (d Descriptor) Validate() error {
	if d.Length < 1 {
		return fabricerr.Config("segment.Validate", d.Name, "length must be positive, got %d", d.Length)
	}
	if d.Frequency < 0 {
		return fabricerr.Config("segment.Validate", d.Name, "frequency must not be negative, got %d", d.Frequency)
	}
	return nil
}

// Allocate splits w tracks across segs proportionally to their frequency.
//
// All demands live in one integer unit (scale = least common multiple of the
// lengths) so division by any length stays exact. With useFullGroups every
// assignment hands out a whole segment group of Length tracks, and the result
// may miss w by at most one group; otherwise the counts sum to w exactly.
// Callers run CheckScale first; Allocate assumes the arithmetic fits int64.
func Allocate(w int, segs []Descriptor, useFullGroups bool) []int {
	result := make([]int, len(segs))
	if w <= 0 || len(segs) == 0 {
		return result
	}

	scale, _ := scaleOf(segs)
	freqSum := int64(0)
	for _, s := range segs {
		freqSum += int64(s.Frequency)
	}
	reduce := scale * freqSum

	demand := make([]int64, len(segs))
	for i, s := range segs {
		demand[i] = scale * int64(w) * int64(s.Frequency)
		if useFullGroups {
			demand[i] /= int64(s.Length)
		}
	}

	assigned, size, imax := 0, 0, 0
	for assigned < w {
		imax = 0
		for i := 1; i < len(demand); i++ {
			if demand[i] > demand[imax] {
				imax = i
			}
		}

		size = 1
		if useFullGroups {
			size = segs[imax].Length
		}
		demand[imax] -= reduce
		result[imax] += size
		assigned += size
	}

	// Undo the last group if we were closer to w without it.
	if assigned-w > size/2 {
		result[imax] -= size
	}

	return result
}

// CheckScale rejects segment sets whose allocation of w tracks would
// overflow int64. Demands shrink by scale*Σfrequency per assignment, and at
// most w assignments happen.
func CheckScale(w int, segs []Descriptor) error {
	if w <= 0 || len(segs) == 0 {
		return nil
	}
	scale, ok := scaleOf(segs)
	if !ok {
		return fabricerr.Config("segment.CheckScale", "segment", "segment lengths have no common multiple within int64")
	}
	freqSum := int64(0)
	for _, s := range segs {
		freqSum += int64(s.Frequency)
	}
	bound, ok := mulChecked(scale, freqSum)
	if ok {
		bound, ok = mulChecked(bound, 2*int64(w))
	}
	if !ok {
		return fabricerr.Config("segment.CheckScale", "segment",
			"allocating %d tracks over these segment lengths and frequencies overflows", w)
	}
	return nil
}

// scaleOf returns the least common multiple of the segment lengths, or false
// when it does not fit int64.
func scaleOf(segs []Descriptor) (int64, bool) {
	scale := int64(1)
	for _, s := range segs {
		l := int64(s.Length)
		var ok bool
		scale, ok = mulChecked(scale/gcd(scale, l), l)
		if !ok {
			return 0, false
		}
	}
	return scale, true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// mulChecked multiplies two non-negative values, reporting overflow.
func mulChecked(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}
