// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation lifecycle, decoupled from
// any specific entrypoint like a CLI.
//
// A run is a fixed pipeline: load the architecture, assemble the
// routing-resource graph, build and freeze the mux library, answer the
// bitstream queries concurrently against the frozen library, and finally
// write the report and the auxiliary netlists.
package app
