package config

import (
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/divisibility"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/histogram"
)

// applyPositive sets facts[key] = value when value is positive.
// Zero values are skipped, allowing the analyzer to use its built-in default.
func applyPositive(facts map[string]any, key string, value int64) {
	if value > 0 {
		facts[key] = value
	}
}

// applyNonEmpty sets facts[key] = value when value is non-empty.
func applyNonEmpty(facts map[string]any, key, value string) {
	if value != "" {
		facts[key] = value
	}
}

// ApplyToFacts merges config values into the analyzer facts map.
// Only non-zero config values override existing facts; zero values
// indicate "use analyzer default" and are skipped.
func (c *Config) ApplyToFacts(facts map[string]any) {
	applyPositive(facts, histogram.ConfigInitialBound, c.Histogram.InitialBound)
	applyNonEmpty(facts, divisibility.ConfigDivisor, c.Divisibility.Divisor)
}
