// Package imprimitivity flags candidates whose divisor structure is
// imprimitive: with g = gcd(d−1) and l = lcm(d−1) over all recorded divisors
// d, a candidate is flagged when g² > l. Flagged source lines are emitted
// verbatim.
package imprimitivity

import (
	"fmt"
	"io"
	"math/big"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
)

// minDivisors is the smallest divisor list the gcd/lcm reduction is defined
// over. Shorter records are skipped and counted.
const minDivisors = 2

// Analyzer reduces divisor-minus-one values to gcd and lcm per record and
// streams flagged lines to its sink.
type Analyzer struct {
	sink analyze.LineSink

	records uint64
	tested  uint64
	flagged uint64
	skipped uint64
}

// NewAnalyzer creates an imprimitivity analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Descriptor returns stable analyzer metadata.
func (a *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.Descriptor{
		ID:          "imprimitivity",
		Description: "Flags candidates where gcd(d-1)^2 exceeds lcm(d-1) across the recorded divisors.",
	}
}

// ListConfigurationOptions returns the analyzer's configuration options.
func (a *Analyzer) ListConfigurationOptions() []analyze.ConfigurationOption {
	return nil
}

// Configure configures the analyzer with the given facts.
func (a *Analyzer) Configure(_ map[string]any) error {
	return nil
}

// SetSink directs flagged lines to the given sink as the stream is consumed.
func (a *Analyzer) SetSink(sink analyze.LineSink) {
	a.sink = sink
}

// Initialize prepares the analyzer for a fresh run.
func (a *Analyzer) Initialize() error {
	a.records = 0
	a.tested = 0
	a.flagged = 0
	a.skipped = 0

	return nil
}

// Consume tests one record.
func (a *Analyzer) Consume(ctx *analyze.Context) error {
	a.records++

	if ctx.Record.DivisorCount() < minDivisors {
		a.skipped++

		return nil
	}

	a.tested++

	if !Imprimitive(ctx.Record.Divisors) {
		return nil
	}

	a.flagged++

	if a.sink != nil {
		err := a.sink.WriteLine(ctx.Raw)
		if err != nil {
			return fmt.Errorf("emit flagged line: %w", err)
		}
	}

	return nil
}

// Imprimitive reports whether gcd² > lcm over the divisor-minus-one values.
// It expects at least two divisors.
func Imprimitive(divisors []*big.Int) bool {
	one := big.NewInt(1)

	gcd := new(big.Int).Sub(divisors[0], one)
	lcm := new(big.Int).Set(gcd)

	term := new(big.Int)
	tmp := new(big.Int)

	for _, divisor := range divisors[1:] {
		term.Sub(divisor, one)

		// lcm(l, t) = l*t / gcd(l, t), folded before the running gcd is
		// updated. A zero operand (divisor 1) makes the lcm zero; dividing
		// by gcd(0, 0) would panic.
		if lcm.Sign() == 0 || term.Sign() == 0 {
			lcm.SetInt64(0)
		} else {
			tmp.GCD(nil, nil, lcm, term)
			lcm.Div(lcm.Mul(lcm, term), tmp)
		}

		gcd.GCD(nil, nil, gcd, term)
	}

	square := new(big.Int).Mul(gcd, gcd)

	return square.Cmp(lcm) > 0
}

// Finalize returns the run report.
func (a *Analyzer) Finalize() (analyze.Report, error) {
	return analyze.Report{
		"records": a.records,
		"tested":  a.tested,
		"flagged": a.flagged,
		"skipped": a.skipped,
	}, nil
}

// Serialize writes a report in the given format.
func (a *Analyzer) Serialize(report analyze.Report, format string, writer io.Writer) error {
	switch format {
	case analyze.FormatJSON:
		return analyze.SerializeJSON(report, writer)
	case analyze.FormatYAML:
		return analyze.SerializeYAML(report, writer)
	case analyze.FormatPlot:
		// Plot output is an HTML document owned by the histogram; keep text
		// summaries out of it.
		return nil
	case analyze.FormatLaTeX, analyze.FormatTable:
		_, err := fmt.Fprintf(writer, "imprimitivity: %v flagged of %v tested (%v skipped with fewer than %d divisors)\n",
			report["flagged"], report["tested"], report["skipped"], minDivisors)
		if err != nil {
			return fmt.Errorf("write summary: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", analyze.ErrUnknownFormat, format)
	}
}
