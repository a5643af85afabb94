package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/femprops/bdf"
	"github.com/notargets/femprops/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, bdf.Format{Size: bdf.Small}, cfg.Format())
	assert.True(t, cfg.Output.WriteShells)
	assert.False(t, cfg.Output.WriteSolids)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Nil(t, cfg.Mass.Scale)
}

func TestParseOverDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
output:
  field_size: 16
  double: true
  write_solids: true
mass:
  symmetry: xy
  scale: 0.5
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, bdf.Format{Size: bdf.Large, Double: true}, cfg.Format())
	assert.True(t, cfg.Output.WriteShells, "unset keys keep their defaults")
	assert.Equal(t, "xy", cfg.Mass.Symmetry)
	require.NotNil(t, cfg.Mass.Scale)
	assert.Equal(t, 0.5, *cfg.Mass.Scale)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("output:\n  width: 8\n"))
	assert.Error(t, err)
}

func TestEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	neg := -1.
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"field size", func(c *Config) { c.Output.FieldSize = 10 }},
		{"double needs large fields", func(c *Config) { c.Output.Double = true }},
		{"no output", func(c *Config) { c.Output.WriteShells = false }},
		{"log mode", func(c *Config) { c.LogMode = "loud" }},
		{"scale", func(c *Config) { c.Mass.Scale = &neg }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, model.ErrConfiguration), "got %v", err)
		})
	}
}

func TestLoadWithEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "femprops.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_mode: prod\n"), 0o644))

	t.Setenv(EnvFieldSize, "16")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, bdf.Large, cfg.Output.FieldSize)

	t.Setenv(EnvLogMode, "quiet")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "quiet", cfg.LogMode)

	t.Setenv(EnvFieldSize, "wide")
	_, err = Load("")
	assert.True(t, errors.Is(err, model.ErrConfiguration))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
