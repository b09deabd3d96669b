package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are descriptor files or directories searched for .hcl files.
	Paths []string `yaml:"paths" validate:"required,min=1,dive,required"`
	// Platforms to resolve. Empty means every platform the descriptors name.
	Platforms []string `yaml:"platforms" validate:"dive,required"`
	// Packages narrows the run to the named packages and their dependencies.
	Packages []string `yaml:"packages" validate:"dive,required"`
	// Constraints are external flavor constraints in the form
	// Root:Flavor=Option or Root:Owner/Flavor=Option.
	Constraints []string `yaml:"constraints" validate:"dive,constraint"`

	Format    string `yaml:"format" validate:"oneof=yaml json dot"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Workers   int    `yaml:"workers" validate:"min=1"`

	// ExternalConstraints is parsed from Constraints by NewConfig.
	ExternalConstraints model.ExternalConstraints `yaml:"-"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Format:    "yaml",
		LogFormat: "text",
		LogLevel:  "info",
		Workers:   4,
	}
}

var constraintPattern = regexp.MustCompile(`^([^:=/\s]+):(?:([^:=/\s]+)/)?([^:=/\s]+)=([^:=/\s]+)$`)

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("constraint", func(fl validator.FieldLevel) bool {
		return constraintPattern.MatchString(fl.Field().String())
	})
}

// ParseConstraint parses Root:Flavor=Option or Root:Owner/Flavor=Option. An
// omitted owner refers to the root itself.
func ParseConstraint(s string) (string, model.FlavorSelection, error) {
	m := constraintPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", model.FlavorSelection{}, fmt.Errorf("invalid constraint '%s': expected Root:Flavor=Option or Root:Owner/Flavor=Option", s)
	}
	return m[1], model.FlavorSelection{Owner: m[2], Flavor: m[3], Option: m[4]}, nil
}

// LoadConfigFile decodes a YAML config file over cfg. Unknown keys are an
// error.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

// NewConfig validates cfg and parses its constraints.
func NewConfig(cfg Config) (*Config, error) {
	if err := configValidate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed '%s' validation", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.ExternalConstraints = make(model.ExternalConstraints)
	for _, raw := range cfg.Constraints {
		root, selection, err := ParseConstraint(raw)
		if err != nil {
			return nil, err
		}
		cfg.ExternalConstraints[root] = append(cfg.ExternalConstraints[root], selection)
	}
	return &cfg, nil
}
