// Package histogram buckets candidates by divisor count and reports
// cumulative bucket snapshots each time the candidate magnitude crosses a
// power-of-ten threshold.
package histogram

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
)

// ErrInvalidInitialBound is returned when the configured threshold is not positive.
var ErrInvalidInitialBound = errors.New("histogram initial bound must be positive")

var decade = big.NewInt(decadeBase)

// Configuration option keys for the histogram analyzer.
const (
	ConfigInitialBound = "Histogram.InitialBound"
)

// Bucket layout. Buckets are indexed by divisor count; counts beyond the
// last bucket are clamped into it rather than rejected, reproducing the
// fixed-width table of the reference dataset. Only buckets 4..15 appear in
// emitted rows; the rest are tracked internally.
const (
	bucketCount = 20
	reportFrom  = 4
	reportTo    = 15

	defaultInitialBound = 1000

	// initialMagnitude pairs with the initial bound so that
	// bound == 1000 * 10^(magnitude-2) holds from the start.
	initialMagnitude = 2

	decadeBase = 10
)

// Row is a cumulative snapshot of the reported buckets, captured before the
// record that triggered the crossing is counted.
type Row struct {
	// Magnitude is the scaling step at emission time.
	Magnitude int `json:"magnitude" yaml:"magnitude"`
	// Bound is the threshold that was crossed, as a decimal string.
	Bound string `json:"bound" yaml:"bound"`
	// Counts holds buckets 4 through 15, in order.
	Counts []uint64 `json:"counts" yaml:"counts"`
	// Final marks the unconditional end-of-stream row.
	Final bool `json:"final,omitempty" yaml:"final,omitempty"`
}

// RowSink receives rows as they are emitted, in stream order.
type RowSink interface {
	WriteRow(row Row) error
}

// Analyzer counts divisors per candidate and emits threshold-crossing rows.
type Analyzer struct {
	initialBound int64

	bound     *big.Int
	magnitude int
	counts    []uint64
	rows      []Row
	records   uint64
	sink      RowSink
}

// NewAnalyzer creates a histogram analyzer with the default threshold.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{initialBound: defaultInitialBound}
	a.reset()

	return a
}

// Descriptor returns stable analyzer metadata.
func (a *Analyzer) Descriptor() analyze.Descriptor {
	return analyze.Descriptor{
		ID:          "histogram",
		Description: "Buckets candidates by divisor count, emitting cumulative rows at each power-of-ten magnitude crossing.",
	}
}

// ListConfigurationOptions returns the analyzer's configuration options.
func (a *Analyzer) ListConfigurationOptions() []analyze.ConfigurationOption {
	return []analyze.ConfigurationOption{
		{
			Name:        ConfigInitialBound,
			Description: "Initial magnitude threshold for row emission.",
			Flag:        "initial-bound",
			Type:        analyze.IntConfigurationOption,
			Default:     int64(defaultInitialBound),
		},
	}
}

// Configure configures the analyzer with the given facts.
func (a *Analyzer) Configure(facts map[string]any) error {
	if val, exists := facts[ConfigInitialBound].(int64); exists {
		if val <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidInitialBound, val)
		}

		a.initialBound = val
	}

	return nil
}

// SetSink directs emitted rows to the given sink as the stream is consumed.
// Without a sink, rows are only retained for the final report.
func (a *Analyzer) SetSink(sink RowSink) {
	a.sink = sink
}

// Initialize prepares the analyzer for a fresh run.
func (a *Analyzer) Initialize() error {
	a.reset()

	return nil
}

func (a *Analyzer) reset() {
	a.bound = big.NewInt(a.initialBound)
	a.magnitude = initialMagnitude
	a.counts = make([]uint64, bucketCount)
	a.rows = nil
	a.records = 0
}

// Consume processes one record. A single record can trigger several row
// emissions when the dataset jumps across more than one decade.
func (a *Analyzer) Consume(ctx *analyze.Context) error {
	for a.bound.Cmp(ctx.Record.Principal) <= 0 {
		err := a.emit(false)
		if err != nil {
			return err
		}

		a.magnitude++
		a.bound.Mul(a.bound, decade)
	}

	a.counts[clampBucket(ctx.Record.DivisorCount())]++
	a.records++

	return nil
}

// Finalize emits the unconditional end-of-stream row and returns the report.
// The final row is emitted even for empty input.
func (a *Analyzer) Finalize() (analyze.Report, error) {
	err := a.emit(true)
	if err != nil {
		return nil, err
	}

	return analyze.Report{
		"rows":        a.rows,
		"records":     a.records,
		"crossings":   len(a.rows) - 1,
		"bucket_from": reportFrom,
		"bucket_to":   reportTo,
		"all_buckets": append([]uint64(nil), a.counts...),
	}, nil
}

// emit snapshots the reported buckets into a row, before any mutation by the
// current record.
func (a *Analyzer) emit(final bool) error {
	row := Row{
		Magnitude: a.magnitude,
		Bound:     a.bound.String(),
		Counts:    append([]uint64(nil), a.counts[reportFrom:reportTo+1]...),
		Final:     final,
	}

	a.rows = append(a.rows, row)

	if a.sink != nil {
		err := a.sink.WriteRow(row)
		if err != nil {
			return fmt.Errorf("emit histogram row: %w", err)
		}
	}

	return nil
}

// clampBucket maps a divisor count to a bucket index, absorbing counts past
// the last bucket into it.
func clampBucket(divisors int) int {
	if divisors >= bucketCount {
		return bucketCount - 1
	}

	return divisors
}

// Serialize writes a report in the given format.
func (a *Analyzer) Serialize(report analyze.Report, format string, writer io.Writer) error {
	rows, _ := report["rows"].([]Row)

	switch format {
	case analyze.FormatLaTeX:
		return writeLaTeXRows(writer, rows)
	case analyze.FormatTable:
		return writeTable(writer, rows)
	case analyze.FormatJSON:
		return analyze.SerializeJSON(report, writer)
	case analyze.FormatYAML:
		return analyze.SerializeYAML(report, writer)
	case analyze.FormatPlot:
		return writePlot(writer, rows)
	default:
		return fmt.Errorf("%w: %q", analyze.ErrUnknownFormat, format)
	}
}
