package fabricerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_KindMatching(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind error
	}{
		{"config", Config("channel.Build", "side=7", "unsupported device side"), ErrConfig},
		{"invariant", Invariant("rrgraph.Build", "", "populated %d nodes, census predicted %d", 3, 4), ErrInvariant},
		{"bounds", Bounds("bitstream.EncodeCMOS", "mux_tree", "path %d >= size %d", 4, 4), ErrBounds},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.kind)
			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.kind)
			for _, other := range []error{ErrConfig, ErrInvariant, ErrBounds} {
				if other != tc.kind {
					assert.NotErrorIs(t, tc.err, other)
				}
			}
		})
	}
}

func TestError_MessageNamesSubject(t *testing.T) {
	err := Config("bitstream.Encode", "mux_spice", "invalid design technology %q", "finfet")
	assert.Equal(t, `bitstream.Encode: configuration error (mux_spice): invalid design technology "finfet"`, err.Error())
	assert.Equal(t, "mux_spice", Subject(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "", Subject(errors.New("plain")))
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Kind: ErrInvariant, Op: "op", Err: cause}
	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, ErrInvariant)
}
