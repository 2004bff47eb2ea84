// Package bitstream turns a multiplexer input selection into the values of
// the multiplexer's configuration-memory bits.
package bitstream

import (
	"context"
	"fmt"

	"github.com/vk/tilegen/internal/circuit"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/muxlib"
)

const (
	// DefaultPath asks the encoder to pick the model's default input.
	DefaultPath = -1
	// FirstInput is the default input of a model without a constant input.
	FirstInput = 0
)

// ResolveDefaultPath returns the input a multiplexer selects when nothing is
// routed through it: the extra constant input when the model has one, the
// first input otherwise.
func ResolveDefaultPath(model circuit.Model, declaredSize int) int {
	if model.AddsConstantInput {
		return declaredSize
	}
	return FirstInput
}

// EncodeCMOS decodes the memory bits that route input pathID of a
// declaredSize-input CMOS multiplexer to its output. The result length
// depends only on the model and size, never on pathID.
func EncodeCMOS(model circuit.Model, lib *muxlib.Library, declaredSize, pathID int) (Bits, error) {
	implemented := model.ImplementedSize(declaredSize)
	g, err := lib.Graph(model.Name, implemented)
	if err != nil {
		return Bits{}, err
	}

	path := pathID
	if pathID == DefaultPath {
		path = ResolveDefaultPath(model, declaredSize)
	} else if pathID < 0 || pathID >= declaredSize {
		return Bits{}, fabricerr.Bounds("bitstream.EncodeCMOS", model.Name,
			"path %d outside mux of size %d", pathID, declaredSize)
	}

	if g.Outputs() != 1 {
		return Bits{}, fabricerr.Invariant("bitstream.EncodeCMOS", model.Name,
			"mux graph has %d outputs, want 1", g.Outputs())
	}

	values, err := g.DecodeMemoryBits(path, 0)
	if err != nil {
		return Bits{}, fmt.Errorf("decoding %s path %d: %w", model.Name, path, err)
	}
	return NewBits(values), nil
}

// Encode dispatches on the model's technology. RRAM multiplexers are not
// encoded yet and yield an empty vector.
func Encode(ctx context.Context, model circuit.Model, lib *muxlib.Library, declaredSize, pathID int) (Bits, error) {
	switch model.Technology {
	case circuit.CMOS:
		return EncodeCMOS(model, lib, declaredSize, pathID)
	case circuit.RRAM:
		ctxlog.FromContext(ctx).Warn("RRAM bitstream encoding is not implemented, returning an empty bitstream.", "model", model.Name)
		return Bits{}, nil
	}
	name := model.TechnologyName
	if name == "" {
		name = model.Technology.String()
	}
	return Bits{}, fabricerr.Config("bitstream.Encode", model.Name, "invalid design technology %q", name)
}
