package testutil

import (
	"testing"
)

// ReferenceArch is a 5x5 fabric: an IO ring with empty corners around a 3x3
// block of clbs, two segment types over 12-track channels, and one mux per
// circuit-model technology.
const ReferenceArch = `
device {
  width        = 5
  height       = 5
  chan_width_x = 12
  chan_width_y = 12
  switch_block = "wilton"
}

segment "L2" {
  length    = 2
  frequency = 1
}

segment "L4" {
  length    = 4
  frequency = 1
}

tile "io" {
  class = "io"
  pin "inpad" {
    type  = "driver"
    sides = ["top", "right", "bottom", "left"]
  }
  pin "outpad" {
    type  = "receiver"
    sides = ["top", "right", "bottom", "left"]
  }
}

tile "clb" {
  pin "I" {
    type  = "receiver"
    count = 4
    sides = ["left", "top"]
    fc    = 0.25
  }
  pin "O" {
    type  = "driver"
    count = 2
    sides = ["right"]
    fc    = { abs = 4 }
  }
}

layout {
  perimeter = "io"
  corners   = "EMPTY"
  fill      = "clb"
}

circuit_model "mux_tree" {
  technology  = "cmos"
  structure   = "tree"
  const_input = true
}

circuit_model "mux_1l" {
  technology = "cmos"
  structure  = "one_level"
}

circuit_model "mux_rram" {
  technology = "rram"
}

mux "cb_mux" {
  model = "mux_tree"
  size  = 4
  path  = default
}

mux "sb_mux" {
  model = "mux_1l"
  size  = 4
  path  = 2
}

mux "rram_mux" {
  model = "mux_rram"
  size  = 4
}

verilog {
  flags = ["ENABLE_TIMING"]
}
`

// RunHCLArchTest runs the pipeline on a single architecture file.
func RunHCLArchTest(t *testing.T, archHCL string) *HarnessResult {
	t.Helper()
	return RunFabricTest(t, map[string]string{"main.hcl": archHCL}, Options{})
}
