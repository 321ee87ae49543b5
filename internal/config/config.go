package config

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
)

// Config is the top-level configuration struct for carmtab.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Analyzers     []string            `mapstructure:"analyzers"`
	Input         InputConfig         `mapstructure:"input"`
	Output        OutputConfig        `mapstructure:"output"`
	Histogram     HistogramConfig     `mapstructure:"histogram"`
	Divisibility  DivisibilityConfig  `mapstructure:"divisibility"`
	Imprimitivity ImprimitivityConfig `mapstructure:"imprimitivity"`
}

// InputConfig holds input stream settings.
type InputConfig struct {
	Path          string `mapstructure:"path"`
	SkipMalformed bool   `mapstructure:"skip_malformed"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// HistogramConfig holds histogram analyzer settings.
type HistogramConfig struct {
	InitialBound int64 `mapstructure:"initial_bound"`
}

// DivisibilityConfig holds divisibility analyzer settings.
type DivisibilityConfig struct {
	Divisor string `mapstructure:"divisor"`
	Output  string `mapstructure:"output"`
}

// ImprimitivityConfig holds imprimitivity analyzer settings.
type ImprimitivityConfig struct {
	Output string `mapstructure:"output"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unrecognized output format.
	ErrInvalidFormat = errors.New("output.format must be one of latex, table, json, yaml, plot")
	// ErrInvalidInitialBound indicates a negative histogram threshold.
	ErrInvalidInitialBound = errors.New("histogram.initial_bound must be non-negative")
	// ErrInvalidDivisor indicates an unparseable or non-positive divisor.
	ErrInvalidDivisor = errors.New("divisibility.divisor must be a positive base-10 integer")
)

var validFormats = map[string]bool{
	analyze.FormatLaTeX: true,
	analyze.FormatTable: true,
	analyze.FormatJSON:  true,
	analyze.FormatYAML:  true,
	analyze.FormatPlot:  true,
}

// Validate checks config invariants.
func (c *Config) Validate() error {
	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.Format)
	}

	if c.Histogram.InitialBound < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidInitialBound, c.Histogram.InitialBound)
	}

	if c.Divisibility.Divisor != "" {
		divisor, ok := new(big.Int).SetString(c.Divisibility.Divisor, 10)
		if !ok || divisor.Sign() <= 0 {
			return fmt.Errorf("%w: got %q", ErrInvalidDivisor, c.Divisibility.Divisor)
		}
	}

	return nil
}
