package sbpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tilegen/internal/fabricerr"
)

func TestTable(t *testing.T) {
	testCases := []struct {
		kind Kind
		want []int
	}{
		{kind: Disjoint, want: []int{0, 1, 2, 3}},
		{kind: Universal, want: []int{3, 2, 1, 0}},
		{kind: Wilton, want: []int{1, 2, 3, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			got, err := Table(4, tc.kind)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeer_Errors(t *testing.T) {
	_, err := Peer(4, 4, Disjoint)
	require.ErrorIs(t, err, fabricerr.ErrBounds)

	_, err = Peer(0, 4, Kind(7))
	require.ErrorIs(t, err, fabricerr.ErrConfig)
	assert.Equal(t, "kind(7)", fabricerr.Subject(err))
}

func TestParse(t *testing.T) {
	k, err := Parse("Wilton")
	require.NoError(t, err)
	assert.Equal(t, Wilton, k)

	_, err = Parse("subset")
	require.ErrorIs(t, err, fabricerr.ErrConfig)
	assert.Equal(t, "subset", fabricerr.Subject(err))
}

func TestTable_ZeroWidth(t *testing.T) {
	got, err := Table(0, Universal)
	require.NoError(t, err)
	assert.Empty(t, got)
}
