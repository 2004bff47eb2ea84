package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/tilegen/internal/bitstream"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/netlist"
	"github.com/vk/tilegen/internal/report"
)

// ReportFileName is the name of the HCL run report inside the output
// directory.
const ReportFileName = "fabric_report.hcl"

// MuxConfigFileName holds one constant configuration module per encoded mux.
const MuxConfigFileName = "mux_config.v"

func (a *App) writeOutputs(ctx context.Context, summary report.Summary) error {
	logger := ctxlog.FromContext(ctx)
	dir := a.config.OutDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	now := a.now()

	err := writeFile(filepath.Join(dir, ReportFileName), func(f *os.File) error {
		return report.Write(f, summary)
	})
	if err != nil {
		return err
	}

	err = writeFile(filepath.Join(dir, netlist.DefinesFileName), func(f *os.File) error {
		if err := netlist.WriteFileHeader(f, "Preprocessing flags to enable/disable features in FPGA Verilog modules", now); err != nil {
			return err
		}
		return netlist.WriteDefines(f, a.arch.VerilogFlags)
	})
	if err != nil {
		return err
	}

	muxConfigPath := filepath.Join(dir, MuxConfigFileName)
	err = writeFile(muxConfigPath, func(f *os.File) error {
		if err := netlist.WriteFileHeader(f, "Configuration memory contents of routing multiplexers", now); err != nil {
			return err
		}
		return writeMuxConfigs(f, summary.Bitstreams)
	})
	if err != nil {
		return err
	}

	err = writeFile(filepath.Join(dir, netlist.IncludeNetlistsFileName), func(f *os.File) error {
		if err := netlist.WriteFileHeader(f, "Netlist Summary", now); err != nil {
			return err
		}
		if err := netlist.WriteIncludeDefines(f, dir); err != nil {
			return err
		}
		return netlist.WriteIncludes(f, []string{muxConfigPath})
	})
	if err != nil {
		return err
	}

	logger.Info("Outputs written.", "dir", dir)
	return nil
}

// writeMuxConfigs emits a module driving each mux's memory bits with its
// encoded bitstream. Muxes without bits (RRAM) get no module.
func writeMuxConfigs(w io.Writer, results []bitstream.Result) error {
	for _, r := range results {
		n := r.Bits.Len()
		if n == 0 {
			continue
		}
		name := r.Query.Mux + "_config"
		out := netlist.Port{Name: "mem_out", LSB: 0, MSB: n - 1}
		if err := netlist.ModuleBegin(w, name, []string{netlist.PortString(netlist.PortOutput, out)}); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\tassign %s = %d'b%s;\n", netlist.PortString(netlist.PortConnection, out), n, r.Bits.String()); err != nil {
			return err
		}
		if err := netlist.ModuleEnd(w, name); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
