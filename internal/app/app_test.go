package app_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tilegen/internal/app"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/netlist"
	"github.com/vk/tilegen/internal/rrgraph"
	"github.com/vk/tilegen/internal/rrnode"
	"github.com/vk/tilegen/internal/testutil"
)

func TestRun_ReferenceFabric(t *testing.T) {
	res := testutil.RunHCLArchTest(t, testutil.ReferenceArch)
	require.NoError(t, res.Err)

	g := res.Result.Graph
	assert.Equal(t, g.Census(), g.CountByType())
	assert.Equal(t, 356, g.Len())
	assert.Equal(t, 64, g.Census()[rrnode.ChanX])
	assert.Empty(t, res.Result.Warnings)

	got := make(map[string]string)
	for _, r := range res.Result.Bitstreams {
		got[r.Query.Mux] = r.Bits.String()
	}
	assert.Equal(t, map[string]string{
		"cb_mux":   "001",
		"rram_mux": "",
		"sb_mux":   "0010",
	}, got)

	// Only CMOS models need a switching graph.
	assert.Equal(t, 2, res.Result.Library.Len())
	assert.Contains(t, res.LogOutput, "RRAM bitstream encoding is not implemented")
}

func TestRun_WritesOutputs(t *testing.T) {
	res := testutil.RunFabricTest(t, map[string]string{"main.hcl": testutil.ReferenceArch}, testutil.Options{WriteOutputs: true})
	require.NoError(t, res.Err)

	reportData, err := os.ReadFile(filepath.Join(res.OutDir, app.ReportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(reportData), `bitstream "cb_mux"`)

	defines, err := os.ReadFile(filepath.Join(res.OutDir, netlist.DefinesFileName))
	require.NoError(t, err)
	assert.Contains(t, string(defines), "`define ENABLE_TIMING 1")
	assert.Contains(t, string(defines), "`timescale 1ns / 1ps")

	include, err := os.ReadFile(filepath.Join(res.OutDir, netlist.IncludeNetlistsFileName))
	require.NoError(t, err)
	assert.Contains(t, string(include), "`include \""+filepath.ToSlash(filepath.Join(res.OutDir, netlist.DefinesFileName))+"\"")
	assert.Contains(t, string(include), "`include \""+filepath.ToSlash(filepath.Join(res.OutDir, app.MuxConfigFileName))+"\"")

	muxConfig, err := os.ReadFile(filepath.Join(res.OutDir, app.MuxConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(muxConfig), "module cb_mux_config(\n\toutput [0:2] mem_out);\n\tassign mem_out[0:2] = 3'b001;\nendmodule")
	assert.Contains(t, string(muxConfig), "assign mem_out[0:3] = 4'b0010;")
	assert.NotContains(t, string(muxConfig), "rram_mux")
}

func TestRun_SplitAcrossFiles(t *testing.T) {
	// The same architecture spread over a nested directory loads identically.
	idx := strings.Index(testutil.ReferenceArch, "circuit_model")
	files := map[string]string{
		"fabric.hcl":         testutil.ReferenceArch[:idx],
		"circuits/muxes.hcl": testutil.ReferenceArch[idx:],
	}
	res := testutil.RunFabricTest(t, files, testutil.Options{WorkerCount: 1})
	require.NoError(t, res.Err)
	assert.Equal(t, 356, res.Result.Graph.Len())
	assert.Len(t, res.Result.Bitstreams, 3)
}

func TestRun_FcClippingStillCompletes(t *testing.T) {
	arch := strings.Replace(testutil.ReferenceArch, "fc    = { abs = 4 }", "fc    = { abs = 40 }", 1)
	res := testutil.RunHCLArchTest(t, arch)
	require.NoError(t, res.Err)

	require.True(t, res.Result.Warnings.Has(rrgraph.FcClipped))
	assert.Equal(t, "clb.O(right)", res.Result.Warnings[0].Subject)
	assert.Contains(t, res.LogOutput, "Fc clipped to channel width.")
}

func TestRun_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		edit    func(string) string
		kind    error
		subject string
	}{
		{
			name:    "unsupported switch block",
			edit:    func(s string) string { return strings.Replace(s, `"wilton"`, `"subset"`, 1) },
			kind:    fabricerr.ErrConfig,
			subject: "subset",
		},
		{
			name:    "path outside the mux",
			edit:    func(s string) string { return strings.Replace(s, "path  = 2", "path  = 4", 1) },
			kind:    fabricerr.ErrBounds,
			subject: "mux_1l",
		},
		{
			name:    "invalid technology",
			edit:    func(s string) string { return strings.Replace(s, `technology = "rram"`, `technology = "finfet"`, 1) },
			kind:    fabricerr.ErrConfig,
			subject: "mux_rram",
		},
		{
			name:    "io tile in the interior",
			edit:    func(s string) string { return strings.Replace(s, `fill      = "clb"`, `fill      = "io"`, 1) },
			kind:    fabricerr.ErrConfig,
			subject: "(1,1)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := testutil.RunHCLArchTest(t, tc.edit(testutil.ReferenceArch))
			require.ErrorIs(t, res.Err, tc.kind)
			assert.Equal(t, tc.subject, fabricerr.Subject(res.Err))
		})
	}
}

func TestNewConfig(t *testing.T) {
	_, err := app.NewConfig(app.Config{})
	require.Error(t, err)

	cfg, err := app.NewConfig(app.Config{ArchPath: "a.hcl"})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.WorkerCount)
}
