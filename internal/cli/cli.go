package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/tilegen/internal/app"
)

// ExitError is a usage mistake; Code is the process exit status to use.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

const usageText = `
tilegen builds the routing-resource graph of a tileable FPGA fabric and
encodes the configuration bits of its routing multiplexers.

Usage:
  tilegen [options] ARCH_PATH

ARCH_PATH is one .hcl architecture file, or a directory whose .hcl files
(searched recursively) together describe one device.

With -out DIR the run writes:
  fabric_report.hcl           node census, Fc warnings, mux bitstreams
  fpga_defines.v              preprocessing flags from the verilog block
  mux_config.v                one constant config module per CMOS mux
  fabric_include_netlists.v   includes of the netlists above

Examples:
  tilegen arch/k4_n4.hcl
  tilegen -out build -workers 8 -log-level debug arch/

Options:
`

var (
	logFormats = []string{"text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Parse turns process arguments into an app.Config. done is true when the
// caller should exit 0 without running (help was requested or no
// architecture was given). Usage mistakes come back as *ExitError.
func Parse(args []string, output io.Writer) (cfg *app.Config, done bool, err error) {
	fs := flag.NewFlagSet("tilegen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, usageText)
		fs.PrintDefaults()
	}

	arch := fs.String("arch", "", "Architecture file or directory.")
	archShort := fs.String("a", "", "Shorthand for -arch.")
	outDir := fs.String("out", "", "Output directory for the report and netlists. Nothing is written when empty.")
	logFormat := fs.String("log-format", "text", "Log format: "+strings.Join(logFormats, " or ")+".")
	logLevel := fs.String("log-level", "info", "Lowest log level shown: "+strings.Join(logLevels, ", ")+".")
	workers := fs.Int("workers", 4, "Bitstream queries encoded in parallel.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}

	path := *arch
	if path == "" {
		path = *archShort
	}
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		slog.Debug("No architecture given, printing usage.")
		fs.Usage()
		return nil, true, nil
	}

	format := strings.ToLower(*logFormat)
	if !oneOf(format, logFormats) {
		return nil, false, usageError("invalid -log-format %q: want %s", *logFormat, strings.Join(logFormats, " or "))
	}
	level := strings.ToLower(*logLevel)
	if !oneOf(level, logLevels) {
		return nil, false, usageError("invalid -log-level %q: want one of %s", *logLevel, strings.Join(logLevels, ", "))
	}

	cfg, err = app.NewConfig(app.Config{
		ArchPath:    path,
		OutDir:      *outDir,
		LogFormat:   format,
		LogLevel:    level,
		WorkerCount: *workers,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Command line parsed.", "arch", cfg.ArchPath, "out", cfg.OutDir, "workers", cfg.WorkerCount)
	return cfg, false, nil
}
