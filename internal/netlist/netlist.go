// Package netlist writes the text pieces shared by every generated
// hardware-description netlist: file banners, the include of the
// preprocessing-flags file, module brackets and port declarations.
package netlist

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefinesFileName is the preprocessing-flags netlist every other netlist
	// includes.
	DefinesFileName = "fpga_defines.v"
	// IncludeNetlistsFileName lists every netlist of the fabric.
	IncludeNetlistsFileName = "fabric_include_netlists.v"
)

const rule = "//-------------------------------------------"

// WriteFileHeader writes the banner that opens every netlist, followed by
// the time scale directive.
func WriteFileHeader(w io.Writer, usage string, now time.Time) error {
	var sb strings.Builder
	sb.WriteString(rule + "\n")
	sb.WriteString("//\tFPGA Synthesizable Verilog Netlist\n")
	fmt.Fprintf(&sb, "//\tDescription: %s\n", usage)
	fmt.Fprintf(&sb, "//\tDate: %s\n", now.Format(time.ANSIC))
	sb.WriteString(rule + "\n")
	sb.WriteString("//----- Time scale -----\n")
	sb.WriteString("`timescale 1ns / 1ps\n\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// DefinesPath is where a netlist in dir finds the preprocessing flags.
func DefinesPath(dir string) string {
	return filepath.ToSlash(filepath.Join(dir, DefinesFileName))
}

// WriteIncludeDefines writes the include of the preprocessing-flags file
// located in dir.
func WriteIncludeDefines(w io.Writer, dir string) error {
	_, err := fmt.Fprintf(w,
		"//------ Include defines: preproc flags -----\n"+
			"`include \"%s\"\n"+
			"//------ End Include defines: preproc flags -----\n",
		DefinesPath(dir))
	return err
}

// WriteDefines writes one define per enabled preprocessing flag.
func WriteDefines(w io.Writer, flags []string) error {
	var sb strings.Builder
	for _, f := range flags {
		fmt.Fprintf(&sb, "`define %s 1\n", f)
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteIncludes writes an include line per netlist path.
func WriteIncludes(w io.Writer, paths []string) error {
	var sb strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&sb, "`include \"%s\"\n", filepath.ToSlash(p))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// PortKind is how a port appears in a netlist.
type PortKind int

const (
	PortInput PortKind = iota
	PortOutput
	// PortConnection is a reference to a port inside an instance connection.
	PortConnection
)

var portKeywords = [...]string{
	PortInput:  "input",
	PortOutput: "output",
}

// Port is a named bus [LSB:MSB].
type Port struct {
	Name string
	LSB  int
	MSB  int
}

// Width is the number of bits of the port.
func (p Port) Width() int {
	if p.MSB >= p.LSB {
		return p.MSB - p.LSB + 1
	}
	return p.LSB - p.MSB + 1
}

// PortString renders a port declaration (`input [0:3] in`) or, for
// PortConnection, a port reference (`in[0:3]`, or `in[2]` for one bit).
func PortString(kind PortKind, p Port) string {
	size := fmt.Sprintf("[%d:%d]", p.LSB, p.MSB)
	if kind == PortConnection {
		if p.Width() == 1 {
			size = fmt.Sprintf("[%d]", p.LSB)
		}
		return p.Name + size
	}
	return portKeywords[kind] + " " + size + " " + p.Name
}

// ModuleBegin opens a module declaration with its ports.
func ModuleBegin(w io.Writer, name string, ports []string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "//----- Verilog module for %s -----\n", name)
	fmt.Fprintf(&sb, "module %s(", name)
	for i, p := range ports {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("\n\t" + p)
	}
	sb.WriteString(");\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// ModuleEnd closes a module declaration.
func ModuleEnd(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "endmodule\n//----- END Verilog module for %s -----\n\n", name)
	return err
}
