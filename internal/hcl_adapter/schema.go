package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a descriptor file.
type fileRoot struct {
	Packages []*packageBlock `hcl:"package,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type packageBlock struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type"`
	Namespace   string `hcl:"namespace,optional"`
	Virtual     bool   `hcl:"virtual,optional"`
	UnitTest    bool   `hcl:"unit_test,optional"`
	IncludePath string `hcl:"include_path,optional"`
	SourcePath  string `hcl:"source_path,optional"`

	Dependencies     []*dependencyBlock      `hcl:"dependency,block"`
	Defines          []*defineBlock          `hcl:"define,block"`
	Externals        []*externalBlock        `hcl:"external,block"`
	Variants         []*variantBlock         `hcl:"variant,block"`
	Flavors          []*flavorBlock          `hcl:"flavor,block"`
	FlavorExtensions []*flavorExtensionBlock `hcl:"extend_flavor,block"`
	Requirements     []*requirementBlock     `hcl:"requirement,block"`
	Platforms        []*platformBlock        `hcl:"platform,block"`
}

type platformBlock struct {
	Name         string `hcl:"name,label"`
	NotSupported bool   `hcl:"not_supported,optional"`

	Dependencies     []*dependencyBlock      `hcl:"dependency,block"`
	Defines          []*defineBlock          `hcl:"define,block"`
	Externals        []*externalBlock        `hcl:"external,block"`
	Variants         []*variantBlock         `hcl:"variant,block"`
	Flavors          []*flavorBlock          `hcl:"flavor,block"`
	FlavorExtensions []*flavorExtensionBlock `hcl:"extend_flavor,block"`
	Requirements     []*requirementBlock     `hcl:"requirement,block"`
}

type dependencyBlock struct {
	Name        string             `hcl:"name,label"`
	Access      string             `hcl:"access,optional"`
	Constraints []*constraintBlock `hcl:"constraint,block"`
}

type constraintBlock struct {
	Owner  string `hcl:"owner,optional"`
	Flavor string `hcl:"flavor"`
	Option string `hcl:"option"`
}

type defineBlock struct {
	Name   string         `hcl:"name,label"`
	Value  hcl.Expression `hcl:"value,optional"`
	Access string         `hcl:"access,optional"`
}

type externalBlock struct {
	Name     string `hcl:"name,label"`
	Type     string `hcl:"type,optional"`
	Include  string `hcl:"include,optional"`
	Location string `hcl:"location,optional"`
	Access   string `hcl:"access,optional"`
	Version  string `hcl:"version,optional"`
}

type variantBlock struct {
	Name        string                `hcl:"name,label"`
	Type        string                `hcl:"type,optional"`
	AllowExtend bool                  `hcl:"allow_extend,optional"`
	Options     []*variantOptionBlock `hcl:"option,block"`
}

type variantOptionBlock struct {
	Name      string           `hcl:"name,label"`
	Defines   []*defineBlock   `hcl:"define,block"`
	Externals []*externalBlock `hcl:"external,block"`
}

type flavorBlock struct {
	Name        string               `hcl:"name,label"`
	Type        string               `hcl:"type,optional"`
	AllowExtend bool                 `hcl:"allow_extend,optional"`
	Options     []*flavorOptionBlock `hcl:"option,block"`
}

type flavorExtensionBlock struct {
	Owner   string               `hcl:"owner,label"`
	Name    string               `hcl:"name,label"`
	Options []*flavorOptionBlock `hcl:"option,block"`
}

type flavorOptionBlock struct {
	Name         string             `hcl:"name,label"`
	Dependencies []*dependencyBlock `hcl:"dependency,block"`
	Defines      []*defineBlock     `hcl:"define,block"`
	Externals    []*externalBlock   `hcl:"external,block"`
}

type requirementBlock struct {
	Name    string `hcl:"name,label"`
	Type    string `hcl:"type,optional"`
	Extends string `hcl:"extends,optional"`
}

// sectionBlocks is the content shared by a package block and its platform
// blocks.
type sectionBlocks struct {
	Dependencies     []*dependencyBlock
	Defines          []*defineBlock
	Externals        []*externalBlock
	Variants         []*variantBlock
	Flavors          []*flavorBlock
	FlavorExtensions []*flavorExtensionBlock
	Requirements     []*requirementBlock
}

func (b *packageBlock) section() sectionBlocks {
	return sectionBlocks{
		Dependencies:     b.Dependencies,
		Defines:          b.Defines,
		Externals:        b.Externals,
		Variants:         b.Variants,
		Flavors:          b.Flavors,
		FlavorExtensions: b.FlavorExtensions,
		Requirements:     b.Requirements,
	}
}

func (b *platformBlock) section() sectionBlocks {
	return sectionBlocks{
		Dependencies:     b.Dependencies,
		Defines:          b.Defines,
		Externals:        b.Externals,
		Variants:         b.Variants,
		Flavors:          b.Flavors,
		FlavorExtensions: b.FlavorExtensions,
		Requirements:     b.Requirements,
	}
}
