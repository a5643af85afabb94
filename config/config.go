// Package config holds the run settings of the femprops command
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/femprops/bdf"
	"github.com/notargets/femprops/model"
	"gopkg.in/yaml.v3"
)

const (
	EnvLogMode   = "FEMPROPS_LOG_MODE"
	EnvFieldSize = "FEMPROPS_FIELD_SIZE"
)

type Config struct {
	LogMode string `yaml:"log_mode"`
	Output  Output `yaml:"output"`
	Area    Area   `yaml:"area"`
	Mass    Mass   `yaml:"mass"`
	Loads   Loads  `yaml:"loads"`
}

// Output controls the bulk-data dump of the skin command
type Output struct {
	FieldSize   int  `yaml:"field_size"`
	Double      bool `yaml:"double"`
	WriteSolids bool `yaml:"write_solids"`
	WriteShells bool `yaml:"write_shells"`
}

type Area struct {
	SumBarArea bool `yaml:"sum_bar_area"`
}

type Mass struct {
	Symmetry string `yaml:"symmetry"`
	// Scale overrides the WTMASS parameter when set
	Scale *float64 `yaml:"scale"`
}

type Loads struct {
	IncludeGravity bool `yaml:"include_gravity"`
}

func Default() Config {
	return Config{
		LogMode: "dev",
		Output:  Output{FieldSize: bdf.Small, WriteShells: true},
		Mass:    Mass{Symmetry: "no"},
	}
}

// Load reads a YAML configuration over the defaults, then applies the
// environment overrides. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()
		if cfg, err = Parse(f); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes r over the defaults without consulting the environment
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogMode); ok && v != "" {
		c.LogMode = v
	}
	if v, ok := lookup(EnvFieldSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return model.NewConfigurationError("%s=%q is not an integer", EnvFieldSize, v)
		}
		c.Output.FieldSize = n
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Format().Validate(); err != nil {
		return model.NewConfigurationError("%v", err)
	}
	if !c.Output.WriteSolids && !c.Output.WriteShells {
		return model.NewConfigurationError("output needs write_solids, write_shells or both")
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "development", "prod", "production", "quiet":
	default:
		return model.NewConfigurationError("unknown log mode %q", c.LogMode)
	}
	if s := c.Mass.Scale; s != nil && *s <= 0 {
		return model.NewConfigurationError("mass scale must be positive, got %g", *s)
	}
	return nil
}

func (c Config) Format() bdf.Format {
	return bdf.Format{Size: c.Output.FieldSize, Double: c.Output.Double}
}
