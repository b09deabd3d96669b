package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/resolve"
)

// Document is the resolved state of one platform.
type Document struct {
	Platform   string    `yaml:"platform" json:"platform"`
	RunID      string    `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	BuildOrder []string  `yaml:"build_order" json:"build_order"`
	Packages   []Package `yaml:"packages" json:"packages"`
}

// Package is one resolved package.
type Package struct {
	Name         string       `yaml:"name" json:"name"`
	Type         string       `yaml:"type" json:"type"`
	BuildIndex   int          `yaml:"build_index" json:"build_index"`
	NotSupported bool         `yaml:"not_supported,omitempty" json:"not_supported,omitempty"`
	Dependencies []Dependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	BuildOrder   []string     `yaml:"build_order" json:"build_order"`

	Defines              []Define      `yaml:"defines,omitempty" json:"defines,omitempty"`
	ExternalDependencies []External    `yaml:"external_dependencies,omitempty" json:"external_dependencies,omitempty"`
	IncludeDirs          []Attribute   `yaml:"include_dirs,omitempty" json:"include_dirs,omitempty"`
	Variants             []Variant     `yaml:"variants,omitempty" json:"variants,omitempty"`
	Requirements         []Requirement `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	Instances            []Instance    `yaml:"instances,omitempty" json:"instances,omitempty"`
}

// Instance is one flavor configuration. Selections are "Owner/Flavor=Option"
// and dependencies carry the selections of the combined instance as
// "Name<Owner/Flavor=Option, ...>".
type Instance struct {
	Flavors              []string `yaml:"flavors" json:"flavors"`
	Dependencies         []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Defines              []string `yaml:"defines,omitempty" json:"defines,omitempty"`
	ExternalDependencies []string `yaml:"external_dependencies,omitempty" json:"external_dependencies,omitempty"`
	NotSupported         bool     `yaml:"not_supported,omitempty" json:"not_supported,omitempty"`
}

// Dependency is one declared edge.
type Dependency struct {
	Name   string `yaml:"name" json:"name"`
	Access string `yaml:"access" json:"access"`
	// Flavor is set on edges contributed by a flavor option, as "F=O".
	Flavor      string   `yaml:"flavor,omitempty" json:"flavor,omitempty"`
	Constraints []string `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// Attribute is the common part of every propagated attribute.
type Attribute struct {
	Name         string `yaml:"name" json:"name"`
	Access       string `yaml:"access" json:"access"`
	IntroducedBy string `yaml:"introduced_by" json:"introduced_by"`
	ConsumedBy   string `yaml:"consumed_by,omitempty" json:"consumed_by,omitempty"`
}

// Define is a propagated define.
type Define struct {
	Attribute `yaml:",inline"`
	Value     string `yaml:"value,omitempty" json:"value,omitempty"`
}

// External is a propagated external dependency.
type External struct {
	Attribute `yaml:",inline"`
	Type      string `yaml:"type" json:"type"`
	Version   string `yaml:"version,omitempty" json:"version,omitempty"`
	Location  string `yaml:"location,omitempty" json:"location,omitempty"`
}

// Variant is a variant merged over a package's build order.
type Variant struct {
	Name         string   `yaml:"name" json:"name"`
	IntroducedBy string   `yaml:"introduced_by" json:"introduced_by"`
	ExtendedBy   []string `yaml:"extended_by,omitempty" json:"extended_by,omitempty"`
	ConsumedBy   string   `yaml:"consumed_by,omitempty" json:"consumed_by,omitempty"`
	Options      []string `yaml:"options" json:"options"`
}

// Requirement is a collected requirement.
type Requirement struct {
	Name         string   `yaml:"name" json:"name"`
	Type         string   `yaml:"type" json:"type"`
	Extends      string   `yaml:"extends,omitempty" json:"extends,omitempty"`
	IntroducedBy []string `yaml:"introduced_by" json:"introduced_by"`
}

// Build converts a result into a document. The virtual top level is left
// out.
func Build(platform string, result *resolve.Result) Document {
	doc := Document{Platform: platform}
	for _, p := range result.Packages() {
		if p.IsTopLevel() {
			continue
		}
		doc.BuildOrder = append(doc.BuildOrder, p.Name)
		doc.Packages = append(doc.Packages, buildPackage(p))
	}
	return doc
}

func buildPackage(p *resolve.ResolvedPackage) Package {
	out := Package{
		Name:         p.Name,
		Type:         p.Package.Type.String(),
		BuildIndex:   p.BuildIndex,
		NotSupported: p.NotSupported,
		BuildOrder:   p.BuildOrder,
	}
	for _, dep := range p.Dependencies {
		d := Dependency{Name: dep.Target, Access: dep.Access.String()}
		if dep.Flavor != nil {
			d.Flavor = dep.Flavor.String()
		}
		for _, c := range dep.Constraints {
			d.Constraints = append(d.Constraints, selectionLabel(c.Flavor, c.Option))
		}
		out.Dependencies = append(out.Dependencies, d)
	}
	for _, e := range p.Defines.All {
		out.Defines = append(out.Defines, Define{Attribute: attribute(e), Value: e.Value.Value})
	}
	for _, e := range p.ExternalDependencies.All {
		out.ExternalDependencies = append(out.ExternalDependencies, External{
			Attribute: attribute(e),
			Type:      e.Value.Type.String(),
			Version:   e.Value.VersionString(),
			Location:  e.Value.Location,
		})
	}
	for _, e := range p.IncludeDirs.All {
		out.IncludeDirs = append(out.IncludeDirs, attribute(e))
	}
	for _, e := range p.Variants.All {
		v := Variant{Name: e.Variant.Name, IntroducedBy: e.IntroducedBy, ExtendedBy: e.ExtendedBy, ConsumedBy: e.ConsumedBy}
		for _, option := range e.Variant.Options {
			v.Options = append(v.Options, option.Name)
		}
		out.Variants = append(out.Variants, v)
	}
	for _, e := range p.Requirements.All {
		out.Requirements = append(out.Requirements, Requirement{
			Name:         e.Requirement.Name,
			Type:         e.Requirement.Type.String(),
			Extends:      e.Requirement.Extends,
			IntroducedBy: e.IntroducedBy,
		})
	}
	// Packages without flavors anywhere below them have a single empty
	// instance, which is left out.
	for _, inst := range p.Instances {
		if len(inst.Selections) == 0 {
			continue
		}
		out.Instances = append(out.Instances, buildInstance(inst))
	}
	return out
}

func buildInstance(inst resolve.Instance) Instance {
	out := Instance{NotSupported: inst.NotSupported}
	for _, sel := range inst.Selections {
		out.Flavors = append(out.Flavors, instanceSelection(sel))
	}
	for _, dep := range inst.Dependencies {
		label := dep.Target
		if len(dep.Selections) > 0 {
			parts := make([]string, 0, len(dep.Selections))
			for _, sel := range dep.Selections {
				parts = append(parts, instanceSelection(sel))
			}
			label = fmt.Sprintf("%s<%s>", dep.Target, strings.Join(parts, ", "))
		}
		out.Dependencies = append(out.Dependencies, label)
	}
	for _, d := range inst.Defines {
		out.Defines = append(out.Defines, d.Name)
	}
	for _, ext := range inst.ExternalDependencies {
		out.ExternalDependencies = append(out.ExternalDependencies, ext.Name)
	}
	return out
}

func instanceSelection(sel model.FlavorSelection) string {
	return fmt.Sprintf("%s/%s", sel.Owner, selectionLabel(sel.Flavor, sel.Option))
}

func attribute[T any](e resolve.Entry[T]) Attribute {
	return Attribute{
		Name:         e.Name,
		Access:       e.Access.String(),
		IntroducedBy: e.IntroducedBy,
		ConsumedBy:   e.ConsumedBy,
	}
}

func selectionLabel(flavor, option string) string {
	return fmt.Sprintf("%s=%s", flavor, option)
}

// WriteYAML writes the documents as a YAML stream, one document per
// platform.
func WriteYAML(w io.Writer, docs ...Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode report for platform '%s': %w", doc.Platform, err)
		}
	}
	return enc.Close()
}

// WriteJSON writes the documents as one indented JSON array.
func WriteJSON(w io.Writer, docs ...Document) error {
	if docs == nil {
		docs = []Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
