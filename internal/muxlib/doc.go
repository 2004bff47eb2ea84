// Package muxlib holds the shared library of multiplexer switching graphs.
//
// The library is filled in one phase and read in another. During the build
// phase a Builder creates the graph of every (circuit model, implemented
// size) pair an architecture uses, building each pair once. Freeze then
// hands out an immutable Library and closes the Builder for good.
//
// A Library has no mutating methods, so any number of goroutines may look up
// graphs from it concurrently without synchronization. The Builder is not
// safe for concurrent use.
package muxlib
