// Package config defines the format-agnostic model of an architecture
// description, along with the Loader interface that format-specific
// packages implement.
//
// The `config.Model` is the single source of truth for the generation
// pipeline: the routing-graph assembler reads its device, segment, tile and
// layout sections, and the bitstream stage reads its circuit models and mux
// instances. Concrete loaders, such as the HCL one, live in separate
// packages.
package config
