package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flagValues holds the raw flag values before they are merged over the
// defaults and the config file.
type flagValues struct {
	configPath  string
	platforms   []string
	packages    []string
	constraints []string
	format      string
	logFormat   string
	logLevel    string
	workers     int
}

// Parse processes command-line arguments. It returns a validated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
// Settings are applied in order: defaults, config file, flags.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults := app.DefaultConfig()
	var values flagValues
	var result *app.Config

	cmd := &cobra.Command{
		Use:   "buildorder [flags] PATH...",
		Short: "Resolve package build order and propagated attributes.",
		Long: `buildorder loads package descriptors (.hcl files) from the given files or
directories, computes the global build order for each platform and reports
the attributes every package inherits from its dependencies.`,
		Example: `  buildorder ./packages
  buildorder --platform Ubuntu --package App -c App:Backend=GL ./packages
  buildorder --config buildorder.yaml --format dot`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			cfg := defaults
			if values.configPath != "" {
				if err := app.LoadConfigFile(values.configPath, &cfg); err != nil {
					return err
				}
			}
			applyFlags(cmd, values, positional, &cfg)

			if len(cfg.Paths) == 0 {
				slog.Debug("No descriptor path provided, printing usage and exiting.")
				return cmd.Usage()
			}

			validated, err := app.NewConfig(cfg)
			if err != nil {
				return err
			}
			result = validated
			return nil
		},
	}
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVar(&values.configPath, "config", "", "Path to a YAML config file.")
	flags.StringSliceVar(&values.platforms, "platform", nil, "Platform to resolve (repeatable). Defaults to every platform the descriptors name.")
	flags.StringSliceVarP(&values.packages, "package", "p", nil, "Only resolve these packages and their dependencies (repeatable).")
	flags.StringArrayVarP(&values.constraints, "constraint", "c", nil, "External flavor constraint Root:Flavor=Option or Root:Owner/Flavor=Option (repeatable).")
	flags.StringVarP(&values.format, "format", "f", defaults.Format, "Report format. Options: 'yaml', 'json' or 'dot'.")
	flags.StringVar(&values.logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&values.logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&values.workers, "workers", defaults.Workers, "Number of platforms resolved concurrently.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if result == nil {
		// Help was requested or no path was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "paths", result.Paths, "platforms", result.Platforms)
	return result, false, nil
}

// applyFlags overrides cfg with every flag the user set explicitly.
// Positional paths replace the configured ones.
func applyFlags(cmd *cobra.Command, values flagValues, positional []string, cfg *app.Config) {
	flags := cmd.Flags()
	if len(positional) > 0 {
		cfg.Paths = positional
	}
	if flags.Changed("platform") {
		cfg.Platforms = values.platforms
	}
	if flags.Changed("package") {
		cfg.Packages = values.packages
	}
	if flags.Changed("constraint") {
		cfg.Constraints = append(cfg.Constraints, values.constraints...)
	}
	if flags.Changed("format") {
		cfg.Format = values.format
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = values.logFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = values.logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = values.workers
	}
}
