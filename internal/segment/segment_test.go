package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tilegen/internal/fabricerr"
)

func sum(v []int) int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}

func TestAllocate_ReferenceScenario(t *testing.T) {
	// scale = lcm(2, 4) = 4, reduce = 4*2 = 8
	// demand: L2 = 4*6*1/2 = 12, L4 = 4*6*1/4 = 6
	// round 1: L2 wins (12), +2 tracks, demand 4
	// round 2: L4 wins (6), +4 tracks, assigned 6 == w
	segs := []Descriptor{
		{Name: "L2", Length: 2, Frequency: 1},
		{Name: "L4", Length: 4, Frequency: 1},
	}
	got := Allocate(6, segs, true)
	assert.Equal(t, []int{2, 4}, got)
}

func TestAllocate_SingleUnits(t *testing.T) {
	testCases := []struct {
		name string
		w    int
		segs []Descriptor
		want []int
	}{
		{
			name: "equal frequencies split evenly",
			w:    10,
			segs: []Descriptor{{Length: 1, Frequency: 1}, {Length: 1, Frequency: 1}},
			want: []int{5, 5},
		},
		{
			name: "frequency ratio 3:1",
			w:    8,
			segs: []Descriptor{{Length: 4, Frequency: 3}, {Length: 2, Frequency: 1}},
			want: []int{6, 2},
		},
		{
			name: "ties go to the first segment",
			w:    3,
			segs: []Descriptor{{Length: 1, Frequency: 1}, {Length: 1, Frequency: 1}},
			want: []int{2, 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Allocate(tc.w, tc.segs, false)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.w, sum(got))
		})
	}
}

func TestAllocate_ZeroAndEmpty(t *testing.T) {
	segs := []Descriptor{{Length: 2, Frequency: 1}, {Length: 4, Frequency: 3}}
	assert.Equal(t, []int{0, 0}, Allocate(0, segs, true))
	assert.Equal(t, []int{0, 0}, Allocate(0, segs, false))
	assert.Empty(t, Allocate(8, nil, true))
}

func TestAllocate_UndoesOvershoot(t *testing.T) {
	// One length-4 group type, w = 5: after 8 tracks the overshoot (3) is
	// larger than half a group (2), so the last group is taken back.
	got := Allocate(5, []Descriptor{{Length: 4, Frequency: 1}}, true)
	assert.Equal(t, []int{4}, got)

	// w = 6: overshoot 2 is not larger than half a group, keep it.
	got = Allocate(6, []Descriptor{{Length: 4, Frequency: 1}}, true)
	assert.Equal(t, []int{8}, got)
}

func TestAllocate_Properties(t *testing.T) {
	catalogs := [][]Descriptor{
		{{Length: 1, Frequency: 1}},
		{{Length: 2, Frequency: 1}, {Length: 4, Frequency: 1}},
		{{Length: 1, Frequency: 5}, {Length: 3, Frequency: 2}, {Length: 6, Frequency: 1}},
		{{Length: 4, Frequency: 1}, {Length: 16, Frequency: 1, Longline: true}},
	}

	for _, segs := range catalogs {
		maxLen := 0
		for _, s := range segs {
			maxLen = max(maxLen, s.Length)
		}
		for w := 1; w <= 64; w++ {
			for _, full := range []bool{false, true} {
				got := Allocate(w, segs, full)
				require.Len(t, got, len(segs))
				for _, n := range got {
					require.GreaterOrEqual(t, n, 0)
				}
				tolerance := 0
				if full {
					tolerance = maxLen
				}
				assert.InDelta(t, w, sum(got), float64(tolerance), "w=%d full=%v segs=%v", w, full, segs)
			}
		}
	}
}

func TestDescriptor_Validate(t *testing.T) {
	require.NoError(t, Descriptor{Name: "L4", Length: 4, Frequency: 1}.Validate())

	err := Descriptor{Name: "bad", Length: 0, Frequency: 1}.Validate()
	require.ErrorIs(t, err, fabricerr.ErrConfig)
	assert.Contains(t, err.Error(), "bad")

	err = Descriptor{Name: "neg", Length: 1, Frequency: -1}.Validate()
	require.ErrorIs(t, err, fabricerr.ErrConfig)
}

func TestAllocate_ManyEqualLengths(t *testing.T) {
	segs := make([]Descriptor, 16)
	for i := range segs {
		segs[i] = Descriptor{Length: 16, Frequency: 1}
	}
	require.NoError(t, CheckScale(256, segs))

	got := Allocate(256, segs, true)
	for i, n := range got {
		assert.Equal(t, 16, n, "segment %d", i)
	}
}

func TestCheckScale(t *testing.T) {
	require.NoError(t, CheckScale(100, []Descriptor{{Length: 2, Frequency: 1}, {Length: 4, Frequency: 3}}))
	require.NoError(t, CheckScale(0, nil))

	var coprime []Descriptor
	for _, p := range []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53} {
		coprime = append(coprime, Descriptor{Length: p, Frequency: 1})
	}
	err := CheckScale(12, coprime)
	require.ErrorIs(t, err, fabricerr.ErrConfig)

	err = CheckScale(1<<40, []Descriptor{{Length: 1 << 20, Frequency: 1 << 10}})
	require.ErrorIs(t, err, fabricerr.ErrConfig)
}
