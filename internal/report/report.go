// Package report writes the summary of a generation run as an HCL document,
// so the same tooling that reads architecture files can read the results.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tilegen/internal/bitstream"
	"github.com/vk/tilegen/internal/rrgraph"
	"github.com/vk/tilegen/internal/rrnode"
)

// Summary is everything a run reports.
type Summary struct {
	Architecture string
	Width        int
	Height       int
	Census       rrnode.Counts
	Nodes        int
	Edges        int
	Warnings     rrgraph.Warnings
	Bitstreams   []bitstream.Result
}

// Write renders s as HCL:
//
//	architecture = "arch.hcl"
//	census { source = 30 ... total = 356 }
//	graph { width = 5 height = 5 nodes = 356 edges = 114 }
//	warning "fc_clipped" { subject = "clb.I(left)" detail = "..." }
//	bitstream "cb_mux" { model = "mux_tree" size = 4 path = -1 bits = "001" hex = "04" }
func Write(w io.Writer, s Summary) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	root.SetAttributeValue("architecture", cty.StringVal(s.Architecture))
	root.AppendNewline()

	census := root.AppendNewBlock("census", nil).Body()
	for _, t := range rrnode.Types {
		census.SetAttributeValue(strings.ToLower(t.String()), cty.NumberIntVal(int64(s.Census[t])))
	}
	census.SetAttributeValue("total", cty.NumberIntVal(int64(s.Census.Total())))
	root.AppendNewline()

	graph := root.AppendNewBlock("graph", nil).Body()
	graph.SetAttributeValue("width", cty.NumberIntVal(int64(s.Width)))
	graph.SetAttributeValue("height", cty.NumberIntVal(int64(s.Height)))
	graph.SetAttributeValue("nodes", cty.NumberIntVal(int64(s.Nodes)))
	graph.SetAttributeValue("edges", cty.NumberIntVal(int64(s.Edges)))

	for _, warn := range s.Warnings {
		root.AppendNewline()
		b := root.AppendNewBlock("warning", []string{warn.Kind.String()}).Body()
		b.SetAttributeValue("subject", cty.StringVal(warn.Subject))
		b.SetAttributeValue("detail", cty.StringVal(warn.Detail))
	}

	for _, r := range s.Bitstreams {
		root.AppendNewline()
		b := root.AppendNewBlock("bitstream", []string{r.Query.Mux}).Body()
		b.SetAttributeValue("model", cty.StringVal(r.Query.Model))
		b.SetAttributeValue("size", cty.NumberIntVal(int64(r.Query.Size)))
		b.SetAttributeValue("path", cty.NumberIntVal(int64(r.Query.Path)))
		b.SetAttributeValue("length", cty.NumberIntVal(int64(r.Bits.Len())))
		b.SetAttributeValue("bits", cty.StringVal(r.Bits.String()))
		b.SetAttributeValue("hex", cty.StringVal(r.Bits.Hex()))
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
