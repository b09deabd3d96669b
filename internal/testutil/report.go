package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/report"
)

// DecodeReports parses the JSON output of a harness run.
func DecodeReports(t *testing.T, output string) []report.Document {
	t.Helper()
	var docs []report.Document
	require.NoError(t, json.Unmarshal([]byte(output), &docs), "output:\n%s", output)
	return docs
}

// FindPackage returns the named package of a report document.
func FindPackage(t *testing.T, doc report.Document, name string) report.Package {
	t.Helper()
	for _, p := range doc.Packages {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "package not found in report", "platform %s, package %s", doc.Platform, name)
	return report.Package{}
}
