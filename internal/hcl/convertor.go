package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/tilegen/internal/bitstream"
	"github.com/vk/tilegen/internal/ctxlog"
	"github.com/vk/tilegen/internal/fabricerr"
	"github.com/vk/tilegen/internal/fc"
)

// defaultKeyword is the bareword that requests a mux's default input.
const defaultKeyword = "default"

var absFcType = cty.Object(map[string]cty.Type{"abs": cty.Number})

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder fills omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte
	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// decodeFc reads a pin's Fc: a bare number is a fraction of the channel
// width, `{ abs = N }` is an absolute track count.
func decodeFc(ctx context.Context, expr hcl.Expression, subject string) (fc.Spec, error) {
	if !isExprDefined(ctx, expr, "fc") {
		return fc.Spec{}, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return fc.Spec{}, fmt.Errorf("invalid fc for pin %s: %w", subject, diags)
	}

	if num, err := convert.Convert(val, cty.Number); err == nil {
		var v float64
		if err := gocty.FromCtyValue(num, &v); err != nil {
			return fc.Spec{}, fabricerr.Config("hcl.decodeFc", subject, "%v", err)
		}
		if v < 0 || v > 1 {
			return fc.Spec{}, fabricerr.Config("hcl.decodeFc", subject, "fractional fc %g outside [0, 1]", v)
		}
		return fc.Spec{Value: v}, nil
	}

	obj, err := convert.Convert(val, absFcType)
	if err != nil {
		return fc.Spec{}, fabricerr.Config("hcl.decodeFc", subject,
			"fc must be a number or { abs = N }, got %s", val.Type().FriendlyName())
	}
	var abs struct {
		Abs int `cty:"abs"`
	}
	if err := gocty.FromCtyValue(obj, &abs); err != nil {
		return fc.Spec{}, fabricerr.Config("hcl.decodeFc", subject, "%v", err)
	}
	if abs.Abs < 0 {
		return fc.Spec{}, fabricerr.Config("hcl.decodeFc", subject, "absolute fc %d is negative", abs.Abs)
	}
	return fc.Spec{Abs: true, Value: float64(abs.Abs)}, nil
}

// decodePath reads a mux's requested input: the bareword `default` (or no
// attribute at all) selects the model's default input.
func decodePath(ctx context.Context, expr hcl.Expression, subject string) (int, error) {
	if !isExprDefined(ctx, expr, "path") {
		return bitstream.DefaultPath, nil
	}
	if trav, ok := expr.(*hclsyntax.ScopeTraversalExpr); ok {
		if len(trav.Traversal) == 1 && trav.Traversal.RootName() == defaultKeyword {
			return bitstream.DefaultPath, nil
		}
		return 0, fabricerr.Config("hcl.decodePath", subject, "path must be %q or an input index", defaultKeyword)
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid path for mux %s: %w", subject, diags)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fabricerr.Config("hcl.decodePath", subject, "path must be %q or an input index", defaultKeyword)
	}
	var path int
	if err := gocty.FromCtyValue(num, &path); err != nil {
		return 0, fabricerr.Config("hcl.decodePath", subject, "%v", err)
	}
	if path < 0 {
		return 0, fabricerr.Config("hcl.decodePath", subject, "path %d is negative", path)
	}
	return path, nil
}
