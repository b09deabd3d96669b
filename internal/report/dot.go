package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/resolve"
)

var nodeShapes = map[model.PackageType]string{
	model.PackageTypeLibrary:                  "box",
	model.PackageTypeExecutable:               "doubleoctagon",
	model.PackageTypeExternalLibrary:          "component",
	model.PackageTypeHeaderLibrary:            "note",
	model.PackageTypeToolRecipe:               "cds",
	model.PackageTypeExternalFlavorConstraint: "diamond",
}

var edgeStyles = map[model.AccessType]string{
	model.AccessPublic:  "solid",
	model.AccessPrivate: "dashed",
	model.AccessLink:    "dotted",
}

// WriteDOT writes the package graph of one platform in Graphviz DOT form.
// Nodes are labelled with their type, edge style follows the access level,
// and flavor edges are orange and carry an "F=O" tail label. Constraint pins
// are appended to the label as "<F=O, ...>". The virtual top level is left
// out.
func WriteDOT(w io.Writer, platform string, result *resolve.Result) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
		bw.WriteByte('\n')
	}

	line("digraph %s", strconv.Quote(platform))
	line("{")
	line("  overlap=scale;")
	line("  splines=true;")
	line("  edge [len=1];")

	packages := result.Packages()
	for _, p := range packages {
		if p.IsTopLevel() {
			continue
		}
		color := "black"
		if p.NotSupported {
			color = "gray"
		}
		label := fmt.Sprintf("%s\\n%s", p.Name, p.Package.Type)
		line("  %s [shape=%s, color=%s, label=\"%s\"];", strconv.Quote(p.Name), nodeShapes[p.Package.Type], color, label)
	}

	for _, p := range packages {
		if p.IsTopLevel() {
			continue
		}
		for _, dep := range p.Dependencies {
			attrs := []string{"style=" + edgeStyles[dep.Access]}
			var label string
			if dep.Flavor != nil {
				attrs = append(attrs, "color=orange")
				label = dep.Flavor.String()
			}
			if len(dep.Constraints) > 0 {
				pins := make([]string, 0, len(dep.Constraints))
				for _, c := range dep.Constraints {
					pins = append(pins, selectionLabel(c.Flavor, c.Option))
				}
				label += "<" + strings.Join(pins, ", ") + ">"
			}
			if label != "" {
				attrs = append(attrs, "taillabel="+strconv.Quote(label))
			}
			line("  %s -> %s [%s];", strconv.Quote(p.Name), strconv.Quote(dep.Target), strings.Join(attrs, ", "))
		}
	}

	line("}")
	return bw.Flush()
}
