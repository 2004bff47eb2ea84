package muxgraph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/fabricerr"
)

func TestDecodeMemoryBits(t *testing.T) {
	testCases := []struct {
		name      string
		structure circuit.Structure
		inputs    int
		levels    int
		in        int
		want      []bool
	}{
		{name: "one level is one-hot", structure: circuit.OneLevel, inputs: 4, in: 2, want: []bool{false, false, true, false}},
		{name: "tree first input", structure: circuit.Tree, inputs: 4, in: 0, want: []bool{false, false}},
		{name: "tree second input", structure: circuit.Tree, inputs: 4, in: 1, want: []bool{true, false}},
		{name: "tree third input", structure: circuit.Tree, inputs: 4, in: 2, want: []bool{false, true}},
		{name: "tree last input", structure: circuit.Tree, inputs: 4, in: 3, want: []bool{true, true}},
		{name: "odd tree passes the last input up", structure: circuit.Tree, inputs: 5, in: 4, want: []bool{false, false, true}},
		{name: "multi level one-hot per level", structure: circuit.MultiLevel, inputs: 9, levels: 2, in: 4,
			want: []bool{false, true, false, false, true, false}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Build(tc.structure, tc.inputs, tc.levels)
			require.NoError(t, err)
			got, err := g.DecodeMemoryBits(tc.in, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuild_EveryPathHasFixedLengthAndIsDistinct(t *testing.T) {
	shapes := []struct {
		structure circuit.Structure
		levels    int
	}{
		{structure: circuit.OneLevel},
		{structure: circuit.Tree},
		{structure: circuit.MultiLevel, levels: 2},
		{structure: circuit.MultiLevel, levels: 3},
	}
	for _, shape := range shapes {
		for n := 2; n <= 17; n++ {
			t.Run(fmt.Sprintf("%s/%d", shape.structure, n), func(t *testing.T) {
				g, err := Build(shape.structure, n, shape.levels)
				require.NoError(t, err)
				assert.Equal(t, n, g.Inputs())
				assert.Equal(t, 1, g.Outputs())

				seen := make(map[string]int)
				for in := 0; in < n; in++ {
					bits, err := g.DecodeMemoryBits(in, 0)
					require.NoError(t, err)
					require.Len(t, bits, g.NumMemoryBits())
					key := fmt.Sprint(bits)
					prev, dup := seen[key]
					require.False(t, dup, "inputs %d and %d decode to the same bits", prev, in)
					seen[key] = in
				}
			})
		}
	}
}

func TestRadix(t *testing.T) {
	assert.Equal(t, 3, Radix(9, 2))
	assert.Equal(t, 4, Radix(10, 2))
	assert.Equal(t, 2, Radix(2, 3))
	assert.Equal(t, 2, Radix(8, 3))
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(circuit.Tree, 1, 0)
	require.ErrorIs(t, err, fabricerr.ErrConfig)

	_, err = Build(circuit.MultiLevel, 4, 0)
	require.ErrorIs(t, err, fabricerr.ErrConfig)

	_, err = Build(circuit.Structure(9), 4, 0)
	require.ErrorIs(t, err, fabricerr.ErrConfig)

	g, err := Build(circuit.OneLevel, 2, 0)
	require.NoError(t, err)
	_, err = g.DecodeMemoryBits(2, 0)
	require.ErrorIs(t, err, fabricerr.ErrBounds)
	_, err = g.DecodeMemoryBits(0, 1)
	require.ErrorIs(t, err, fabricerr.ErrBounds)
}

func TestValidate(t *testing.T) {
	t.Run("two outputs", func(t *testing.T) {
		g := &Graph{}
		a := g.addNode(Input)
		o1 := g.addNode(Output)
		g.addNode(Output)
		g.addEdge(a, o1, 0, false)
		require.ErrorIs(t, g.Validate(), fabricerr.ErrInvariant)
	})

	t.Run("cycle", func(t *testing.T) {
		g := &Graph{}
		a := g.addNode(Input)
		b := g.addNode(Internal)
		c := g.addNode(Internal)
		g.addNode(Output)
		g.addEdge(a, b, 0, false)
		g.addEdge(b, c, 0, false)
		g.addEdge(c, b, 0, false)
		require.ErrorIs(t, g.Validate(), fabricerr.ErrInvariant)
	})

	t.Run("dangling input", func(t *testing.T) {
		g := &Graph{memBits: 1}
		a := g.addNode(Input)
		g.addNode(Input)
		o := g.addNode(Output)
		g.addEdge(a, o, 0, false)
		require.ErrorIs(t, g.Validate(), fabricerr.ErrInvariant)
	})
}
