package bitstream

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/muxlib"
)

var (
	treeConst = circuit.Model{Name: "mux_tree", Technology: circuit.CMOS, Structure: circuit.Tree, AddsConstantInput: true}
	flat      = circuit.Model{Name: "mux_1l", Technology: circuit.CMOS, Structure: circuit.OneLevel}
	resistive = circuit.Model{Name: "mux_rram", Technology: circuit.RRAM, Structure: circuit.OneLevel}
	finfet    = circuit.Model{Name: "mux_finfet", TechnologyName: "finfet", Structure: circuit.OneLevel}
)

func library(t *testing.T) *muxlib.Library {
	t.Helper()
	b := muxlib.NewBuilder()
	require.NoError(t, b.Add(treeConst, treeConst.ImplementedSize(4)))
	require.NoError(t, b.Add(flat, flat.ImplementedSize(4)))
	return b.Freeze()
}

func TestResolveDefaultPath(t *testing.T) {
	assert.Equal(t, 4, ResolveDefaultPath(treeConst, 4))
	assert.Equal(t, FirstInput, ResolveDefaultPath(flat, 4))
	assert.NotEqual(t, DefaultPath, FirstInput)
}

func TestEncodeCMOS(t *testing.T) {
	lib := library(t)

	testCases := []struct {
		name  string
		model circuit.Model
		path  int
		want  string
	}{
		// The 5-input tree passes its constant input up to the last level.
		{name: "default selects the constant input", model: treeConst, path: DefaultPath, want: "001"},
		{name: "first input", model: treeConst, path: 0, want: "000"},
		{name: "fourth input", model: treeConst, path: 3, want: "110"},
		{name: "one level default is first input", model: flat, path: DefaultPath, want: "1000"},
		{name: "one level third input", model: flat, path: 2, want: "0010"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bits, err := EncodeCMOS(tc.model, lib, 4, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, bits.String())
		})
	}
}

func TestEncodeCMOS_FixedLength(t *testing.T) {
	lib := library(t)
	for path := DefaultPath; path < 4; path++ {
		bits, err := EncodeCMOS(treeConst, lib, 4, path)
		require.NoError(t, err)
		assert.Equal(t, 3, bits.Len(), "path %d", path)
	}
}

func TestEncodeCMOS_Errors(t *testing.T) {
	lib := library(t)

	_, err := EncodeCMOS(treeConst, lib, 4, 4)
	require.ErrorIs(t, err, fabricerr.ErrBounds)
	assert.Equal(t, "mux_tree", fabricerr.Subject(err))

	_, err = EncodeCMOS(treeConst, lib, 4, -2)
	require.ErrorIs(t, err, fabricerr.ErrBounds)

	_, err = EncodeCMOS(treeConst, lib, 8, 0)
	require.ErrorIs(t, err, fabricerr.ErrInvariant)
}

func TestEncode_Dispatch(t *testing.T) {
	lib := library(t)
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	bits, err := Encode(ctx, resistive, lib, 4, 0)
	require.NoError(t, err)
	assert.Zero(t, bits.Len())
	assert.Contains(t, logs.String(), "mux_rram")

	_, err = Encode(ctx, finfet, lib, 4, 0)
	require.ErrorIs(t, err, fabricerr.ErrConfig)
	assert.Equal(t, "mux_finfet", fabricerr.Subject(err))
	assert.Contains(t, err.Error(), "finfet")

	bits, err = Encode(ctx, flat, lib, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, "0100", bits.String())
}

func TestEncodeAll_MatchesSequential(t *testing.T) {
	lib := library(t)
	catalog, err := circuit.NewCatalog(treeConst, flat, resistive)
	require.NoError(t, err)

	var queries []Query
	for path := DefaultPath; path < 4; path++ {
		queries = append(queries,
			Query{Mux: "a", Model: treeConst.Name, Size: 4, Path: path},
			Query{Mux: "b", Model: flat.Name, Size: 4, Path: path},
		)
	}
	queries = append(queries, Query{Mux: "c", Model: resistive.Name, Size: 4, Path: 0})

	results, err := EncodeAll(context.Background(), catalog, lib, queries, 3)
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, q := range queries {
		model, err := catalog.Lookup(q.Model)
		require.NoError(t, err)
		want, err := Encode(context.Background(), model, lib, q.Size, q.Path)
		require.NoError(t, err)
		assert.Equal(t, q, results[i].Query)
		assert.Equal(t, want.String(), results[i].Bits.String())
	}
}

func TestEncodeAll_FirstErrorFails(t *testing.T) {
	lib := library(t)
	catalog, err := circuit.NewCatalog(treeConst)
	require.NoError(t, err)

	queries := []Query{
		{Mux: "ok", Model: treeConst.Name, Size: 4, Path: 0},
		{Mux: "bad", Model: treeConst.Name, Size: 4, Path: 9},
	}
	_, err = EncodeAll(context.Background(), catalog, lib, queries, 0)
	require.ErrorIs(t, err, fabricerr.ErrBounds)
	assert.Contains(t, err.Error(), "mux bad")

	_, err = EncodeAll(context.Background(), catalog, lib, []Query{{Mux: "x", Model: "nope", Size: 4}}, 2)
	require.ErrorIs(t, err, fabricerr.ErrConfig)
}

func TestBits(t *testing.T) {
	b := NewBits([]bool{true, false, false, true, false, false, false, false, true})
	assert.Equal(t, 9, b.Len())
	assert.Equal(t, "100100001", b.String())
	assert.Equal(t, "0901", b.Hex())
	assert.True(t, b.Get(8))
	assert.False(t, b.Get(9))
	assert.Equal(t, []bool{true, false, false, true, false, false, false, false, true}, b.Bools())
	assert.Equal(t, "", Bits{}.String())
}
