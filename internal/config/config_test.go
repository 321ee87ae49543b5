package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/divisibility"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/histogram"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".carmtab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, ""))

	require.NoError(t, err)
	assert.Equal(t, config.DefaultInputPath, cfg.Input.Path)
	assert.Equal(t, "latex", cfg.Output.Format)
	assert.Equal(t, divisibility.DefaultDivisor, cfg.Divisibility.Divisor)
	assert.Equal(t, config.DefaultDivisibilityOutput, cfg.Divisibility.Output)
	assert.False(t, cfg.Input.SkipMalformed)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
input:
  path: other_table.txt
  skip_malformed: true
output:
  format: json
histogram:
  initial_bound: 100
divisibility:
  divisor: "12345678901234567890"
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "other_table.txt", cfg.Input.Path)
	assert.True(t, cfg.Input.SkipMalformed)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, int64(100), cfg.Histogram.InitialBound)
	assert.Equal(t, "12345678901234567890", cfg.Divisibility.Divisor)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultInputPath, cfg.Input.Path)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	_, err := config.LoadConfig(writeConfig(t, "output:\n  format: xml\n"))

	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestLoadConfig_InvalidDivisor(t *testing.T) {
	_, err := config.LoadConfig(writeConfig(t, "divisibility:\n  divisor: \"-7\"\n"))

	require.ErrorIs(t, err, config.ErrInvalidDivisor)
}

func TestApplyToFacts(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Histogram.InitialBound = 500
	cfg.Divisibility.Divisor = "99"

	facts := map[string]any{}
	cfg.ApplyToFacts(facts)

	assert.Equal(t, int64(500), facts[histogram.ConfigInitialBound])
	assert.Equal(t, "99", facts[divisibility.ConfigDivisor])
}

func TestApplyToFacts_SkipsZeroValues(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}

	facts := map[string]any{}
	cfg.ApplyToFacts(facts)

	assert.Empty(t, facts)
}
