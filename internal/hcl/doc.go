// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, decoding into
// the schema structs, and translating those into the format-agnostic
// architecture model, including the cty conversions of values whose type
// depends on how they were written.
package hcl
