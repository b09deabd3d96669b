package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/multierr"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/config"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL descriptor loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths, in sorted file order,
// and translates the package blocks into the descriptor model. Failures of
// all files are reported together.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL: Loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL: Discovered descriptor files.", "count", len(files))

	parser := hclparse.NewParser()
	cfg := &config.Model{}
	var errs error
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			errs = multierr.Append(errs, fmt.Errorf("failed to parse HCL file %s: %w", file, diags))
			continue
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			errs = multierr.Append(errs, fmt.Errorf("failed to decode HCL file %s: %w", file, diags))
			continue
		}

		for _, block := range root.Packages {
			desc, err := l.translatePackage(ctx, file, block)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			cfg.Descriptors = append(cfg.Descriptors, desc)
		}
	}
	if errs != nil {
		return nil, errs
	}

	logger.Debug("HCL: Loading complete.", "package_count", len(cfg.Descriptors), "platforms", cfg.Platforms())
	return cfg, nil
}

var _ config.Loader = (*Loader)(nil)
