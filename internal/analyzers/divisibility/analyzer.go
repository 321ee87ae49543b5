// Package divisibility filters candidates whose principal number is exactly
// divisible by a fixed large constant, emitting the matching source lines
// verbatim.
package divisibility

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
)

// Configuration option keys for the divisibility analyzer.
const (
	ConfigDivisor = "Divisibility.Divisor"
)

// DefaultDivisor is the constant of the reference run.
const DefaultDivisor = "5717264681"

// ErrInvalidDivisor is returned when the configured divisor is not a positive
// base-10 integer.
var ErrInvalidDivisor = errors.New("divisor must be a positive base-10 integer")

// Analyzer tests each principal number against the divisor constant and
// streams matching lines to its sink.
type Analyzer struct {
	divisor *big.Int
	sink    analyze.LineSink

	records uint64
	matches uint64
	scratch big.Int
}

// NewAnalyzer creates a divisibility analyzer with the reference divisor.
func NewAnalyzer() *Analyzer {
	divisor, _ := new(big.Int).SetString(DefaultDivisor, 10)

	return &Analyzer{divisor: divisor}
}

// Descriptor returns stable analyzer metadata.
func (a *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.Descriptor{
		ID:          "divisibility",
		Description: "Selects candidates exactly divisible by a fixed constant, preserving the original lines.",
	}
}

// ListConfigurationOptions returns the analyzer's configuration options.
func (a *Analyzer) ListConfigurationOptions() []analyze.ConfigurationOption {
	return []analyze.ConfigurationOption{
		{
			Name:        ConfigDivisor,
			Description: "Divisor constant as a base-10 integer of any magnitude.",
			Flag:        "divisor",
			Type:        analyze.StringConfigurationOption,
			Default:     DefaultDivisor,
		},
	}
}

// Configure configures the analyzer with the given facts.
func (a *Analyzer) Configure(facts map[string]any) error {
	if val, exists := facts[ConfigDivisor].(string); exists {
		divisor, ok := new(big.Int).SetString(val, 10)
		if !ok || divisor.Sign() <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidDivisor, val)
		}

		a.divisor = divisor
	}

	return nil
}

// SetSink directs matching lines to the given sink as the stream is consumed.
func (a *Analyzer) SetSink(sink analyze.LineSink) {
	a.sink = sink
}

// Divisor returns the active divisor constant.
func (a *Analyzer) Divisor() *big.Int {
	return new(big.Int).Set(a.divisor)
}

// Initialize prepares the analyzer for a fresh run.
func (a *Analyzer) Initialize() error {
	a.records = 0
	a.matches = 0

	return nil
}

// Consume tests one record. The divisors list is not consulted; only the
// principal number matters here.
func (a *Analyzer) Consume(ctx *analyze.Context) error {
	a.records++

	if a.scratch.Mod(ctx.Record.Principal, a.divisor).Sign() != 0 {
		return nil
	}

	a.matches++

	if a.sink != nil {
		err := a.sink.WriteLine(ctx.Raw)
		if err != nil {
			return fmt.Errorf("emit matching line: %w", err)
		}
	}

	return nil
}

// Finalize returns the run report.
func (a *Analyzer) Finalize() (analyze.Report, error) {
	return analyze.Report{
		"records": a.records,
		"matches": a.matches,
		"divisor": a.divisor.String(),
	}, nil
}

// Serialize writes a report in the given format. Matching lines go through
// the sink during the run; the report itself is a summary.
func (a *Analyzer) Serialize(report analyze.Report, format string, writer io.Writer) error {
	switch format {
	case analyze.FormatJSON:
		return analyze.SerializeJSON(report, writer)
	case analyze.FormatYAML:
		return analyze.SerializeYAML(report, writer)
	case analyze.FormatPlot:
		// Plot output is an HTML document owned by the histogram; a text
		// summary interleaved into it would corrupt the file. The counts
		// still reach the terminal through the run summary.
		return nil
	case analyze.FormatLaTeX, analyze.FormatTable:
		_, err := fmt.Fprintf(writer, "divisibility: %v of %v candidates divisible by %v\n",
			report["matches"], report["records"], report["divisor"])
		if err != nil {
			return fmt.Errorf("write summary: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", analyze.ErrUnknownFormat, format)
	}
}
