package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expressions with zero-width
// placeholders, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("HCL: Checked attribute presence.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// primitiveString evaluates expr without variables and renders it as a
// string. Numbers and bools are converted; null and absent values become "".
func primitiveString(ctx context.Context, expr hcl.Expression, attrName string) (string, error) {
	if !isExprDefined(ctx, expr, attrName) {
		return "", nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.Type().IsPrimitiveType() {
		return "", fmt.Errorf("%s: %s must be a string, number or bool, got %s", expr.Range(), attrName, val.Type().FriendlyName())
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", expr.Range(), attrName, err)
	}
	return str.AsString(), nil
}
