// Package framework orchestrates analyzers over a record stream.
package framework

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/record"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/textio"
)

// defaultProgressEvery is the record interval between progress log entries.
const defaultProgressEvery = 1_000_000

// Options controls a run.
type Options struct {
	// SkipMalformed drops unparseable lines with a warning instead of
	// aborting the run.
	SkipMalformed bool

	// ProgressEvery is the record interval between progress log entries.
	// Zero means the default; negative disables progress logging.
	ProgressEvery int64

	// Logger receives progress and warning entries. Nil means slog.Default.
	Logger *slog.Logger
}

// Stats summarizes one pass over the input.
type Stats struct {
	Records int64
	Skipped int64
	Elapsed time.Duration
}

// Runner feeds every selected analyzer from a single pass over the input.
// Analyzers keep independent accumulators; nothing is shared between them.
type Runner struct {
	analyzers []analyze.RecordAnalyzer
	opts      Options
	logger    *slog.Logger
}

// NewRunner creates a runner over the given analyzers.
func NewRunner(analyzers []analyze.RecordAnalyzer, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.ProgressEvery == 0 {
		opts.ProgressEvery = defaultProgressEvery
	}

	return &Runner{analyzers: analyzers, opts: opts, logger: logger}
}

// Run consumes the source to exhaustion and finalizes every analyzer.
// On a malformed line it either aborts with an error naming the line number
// (the default) or, with SkipMalformed, logs a warning and moves on.
func (r *Runner) Run(src *textio.Source) (map[analyze.RecordAnalyzer]analyze.Report, Stats, error) {
	start := time.Now()

	var stats Stats

	for _, analyzer := range r.analyzers {
		err := analyzer.Initialize()
		if err != nil {
			return nil, stats, fmt.Errorf("initialize %s: %w", analyzer.Descriptor().ID, err)
		}
	}

	for src.Scan() {
		raw := src.Line()
		line := src.LineNumber()

		rec, err := record.ParseLine(raw)
		if err != nil {
			if !r.opts.SkipMalformed {
				return nil, stats, fmt.Errorf("line %d: %w", line, err)
			}

			stats.Skipped++
			r.logger.Warn("skipping malformed line", "line", line, "error", err)

			continue
		}

		ctx := &analyze.Context{Record: rec, Raw: raw, Index: line}

		for _, analyzer := range r.analyzers {
			consumeErr := analyzer.Consume(ctx)
			if consumeErr != nil {
				return nil, stats, fmt.Errorf("%s at line %d: %w", analyzer.Descriptor().ID, line, consumeErr)
			}
		}

		stats.Records++

		if r.opts.ProgressEvery > 0 && stats.Records%r.opts.ProgressEvery == 0 {
			r.logger.Info("processing records",
				"records", humanize.Comma(stats.Records),
				"elapsed", time.Since(start).Round(time.Second).String(),
			)
		}
	}

	err := src.Err()
	if err != nil {
		return nil, stats, err
	}

	results := make(map[analyze.RecordAnalyzer]analyze.Report, len(r.analyzers))

	for _, analyzer := range r.analyzers {
		report, finalizeErr := analyzer.Finalize()
		if finalizeErr != nil {
			return nil, stats, fmt.Errorf("finalize %s: %w", analyzer.Descriptor().ID, finalizeErr)
		}

		results[analyzer] = report
	}

	stats.Elapsed = time.Since(start)

	r.logger.Info("run complete",
		"records", humanize.Comma(stats.Records),
		"skipped", humanize.Comma(stats.Skipped),
		"elapsed", stats.Elapsed.Round(time.Millisecond).String(),
	)

	return results, stats, nil
}

// ConfigureAll applies the facts map to every analyzer.
func ConfigureAll(analyzers []analyze.RecordAnalyzer, facts map[string]any) error {
	var errs []error

	for _, analyzer := range analyzers {
		err := analyzer.Configure(facts)
		if err != nil {
			errs = append(errs, fmt.Errorf("configure %s: %w", analyzer.Descriptor().ID, err))
		}
	}

	return errors.Join(errs...)
}
