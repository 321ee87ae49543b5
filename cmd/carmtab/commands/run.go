// Package commands implements CLI command handlers for carmtab.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/analyze"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/divisibility"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/histogram"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/analyzers/imprimitivity"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/config"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/framework"
	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/textio"
)

// defaultAnalyzerID runs when neither flags nor config select analyzers.
const defaultAnalyzerID = "histogram"

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	configPath  string
	analyzerIDs []string
	format      string
	inputPath   string
	outputPath  string

	divisor      string
	initialBound int64
	divisorsOut  string
	flaggedOut   string

	skipMalformed bool
	silent        bool
	noColor       bool
	verbose       bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run [table-file]",
		Short: "Run record analyzers over a factor table",
		Long: "Run selected analyzers in a single streaming pass over a factor table.\n" +
			"Each line is one candidate number followed by its recorded prime divisors.",
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file path (default: .carmtab.yaml in CWD or $HOME)")
	cmd.Flags().StringSliceVarP(&rc.analyzerIDs, "analyzers", "a", nil,
		"Analyzer IDs or glob patterns (example: histogram,divisibility)")
	cmd.Flags().StringVar(&rc.format, "format", "", "Output format: latex, table, json, yaml, plot")
	cmd.Flags().StringVarP(&rc.inputPath, "input", "i", "",
		"Input table path (.gz and .lz4 inputs are decompressed transparently)")
	cmd.Flags().StringVarP(&rc.outputPath, "output", "o", "", "Report destination (default: stdout)")

	cmd.Flags().StringVar(&rc.divisor, "divisor", "", "Divisibility constant (base-10 integer of any magnitude)")
	cmd.Flags().Int64Var(&rc.initialBound, "initial-bound", 0, "Initial histogram threshold (0 = default 1000)")
	cmd.Flags().StringVar(&rc.divisorsOut, "divisors-out", "", "Destination for lines matching the divisibility test")
	cmd.Flags().StringVar(&rc.flaggedOut, "flagged-out", "", "Destination for lines flagged by the imprimitivity test")

	cmd.Flags().BoolVar(&rc.skipMalformed, "skip-malformed", false,
		"Skip unparseable lines with a warning instead of aborting")
	cmd.Flags().BoolVar(&rc.silent, "silent", false, "Disable progress output")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored summary output")
	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	rc.mergeFlags(cmd, cfg, args)

	err = cfg.Validate()
	if err != nil {
		return err
	}

	logger := rc.newLogger(cmd.ErrOrStderr())

	registry, err := analyze.NewRegistry(
		histogram.NewAnalyzer(),
		divisibility.NewAnalyzer(),
		imprimitivity.NewAnalyzer(),
	)
	if err != nil {
		return err
	}

	ids := cfg.Analyzers
	if len(ids) == 0 {
		ids = []string{defaultAnalyzerID}
	}

	selected, err := registry.Select(ids)
	if err != nil {
		return err
	}

	facts := map[string]any{}
	cfg.ApplyToFacts(facts)

	err = framework.ConfigureAll(selected, facts)
	if err != nil {
		return err
	}

	// The input must open before any output file is created, so a missing
	// table never leaves partial outputs behind.
	src, err := textio.Open(cfg.Input.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	out, closeOut, err := openOutput(cfg.Output.Path, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	outOpen := true

	defer func() {
		if outOpen {
			_ = closeOut()
		}
	}()

	sinks, err := wireSinks(selected, cfg, out)
	if err != nil {
		return err
	}

	runner := framework.NewRunner(selected, framework.Options{
		SkipMalformed: cfg.Input.SkipMalformed,
		ProgressEvery: rc.progressEvery(),
		Logger:        logger,
	})

	results, stats, runErr := runner.Run(src)

	closeErr := closeAll(sinks)
	if runErr != nil {
		return runErr
	}

	if closeErr != nil {
		return closeErr
	}

	// With latex output the histogram rows were already streamed; the filter
	// analyzers write only to their own files in that format.
	if cfg.Output.Format != analyze.FormatLaTeX {
		err = analyze.OutputResults(selected, results, cfg.Output.Format, out)
		if err != nil {
			return err
		}
	}

	outOpen = false

	err = closeOut()
	if err != nil {
		return err
	}

	rc.printSummary(cmd.ErrOrStderr(), cfg, stats, selected, results)

	return nil
}

// mergeFlags lets explicitly set flags override file and env configuration.
func (rc *RunCommand) mergeFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}

	flags := cmd.Flags()

	if flags.Changed("analyzers") {
		cfg.Analyzers = rc.analyzerIDs
	}

	if flags.Changed("format") {
		cfg.Output.Format = rc.format
	}

	if flags.Changed("input") {
		cfg.Input.Path = rc.inputPath
	}

	if flags.Changed("output") {
		cfg.Output.Path = rc.outputPath
	}

	if flags.Changed("divisor") {
		cfg.Divisibility.Divisor = rc.divisor
	}

	if flags.Changed("initial-bound") {
		cfg.Histogram.InitialBound = rc.initialBound
	}

	if flags.Changed("divisors-out") {
		cfg.Divisibility.Output = rc.divisorsOut
	}

	if flags.Changed("flagged-out") {
		cfg.Imprimitivity.Output = rc.flaggedOut
	}

	if flags.Changed("skip-malformed") {
		cfg.Input.SkipMalformed = rc.skipMalformed
	}
}

func (rc *RunCommand) newLogger(writer io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if rc.verbose {
		level = slog.LevelDebug
	}

	if rc.silent {
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

func (rc *RunCommand) progressEvery() int64 {
	if rc.silent {
		return -1
	}

	return 0 // runner default.
}

// openOutput resolves the report destination. An empty path means the
// command's stdout; the returned closer is a no-op in that case.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report output: %w", err)
	}

	return file, file.Close, nil
}

// wireSinks attaches per-analyzer output streams. Filter analyzers write the
// selected source lines to their own files; the histogram streams typeset
// rows into the report destination when the format is latex.
func wireSinks(
	selected []analyze.RecordAnalyzer,
	cfg *config.Config,
	out io.Writer,
) ([]io.Closer, error) {
	var sinks []io.Closer

	for _, analyzer := range selected {
		switch a := analyzer.(type) {
		case *histogram.Analyzer:
			if cfg.Output.Format == analyze.FormatLaTeX {
				a.SetSink(histogram.NewLaTeXRowSink(out))
			}
		case *divisibility.Analyzer:
			sink, err := textio.Create(cfg.Divisibility.Output)
			if err != nil {
				_ = closeAll(sinks)

				return nil, err
			}

			a.SetSink(sink)
			sinks = append(sinks, sink)
		case *imprimitivity.Analyzer:
			sink, err := textio.Create(cfg.Imprimitivity.Output)
			if err != nil {
				_ = closeAll(sinks)

				return nil, err
			}

			a.SetSink(sink)
			sinks = append(sinks, sink)
		}
	}

	return sinks, nil
}

func closeAll(closers []io.Closer) error {
	var firstErr error

	for _, closer := range closers {
		err := closer.Close()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (rc *RunCommand) printSummary(
	writer io.Writer,
	cfg *config.Config,
	stats framework.Stats,
	selected []analyze.RecordAnalyzer,
	results map[analyze.RecordAnalyzer]analyze.Report,
) {
	if rc.silent {
		return
	}

	if rc.noColor {
		color.NoColor = true
	}

	check := color.New(color.FgGreen).Sprint("✓")
	fmt.Fprintf(writer, "%s %s records in %s (%s skipped)\n",
		check,
		humanize.Comma(stats.Records),
		stats.Elapsed.Round(time.Millisecond),
		humanize.Comma(stats.Skipped),
	)

	bold := color.New(color.Bold)

	for _, analyzer := range selected {
		report := results[analyzer]
		if report == nil {
			continue
		}

		switch analyzer.(type) {
		case *histogram.Analyzer:
			fmt.Fprintf(writer, "  %s: %v magnitude crossings\n", bold.Sprint("histogram"), report["crossings"])
		case *divisibility.Analyzer:
			fmt.Fprintf(writer, "  %s: %v matches -> %s\n",
				bold.Sprint("divisibility"), report["matches"], cfg.Divisibility.Output)
		case *imprimitivity.Analyzer:
			fmt.Fprintf(writer, "  %s: %v flagged -> %s\n",
				bold.Sprint("imprimitivity"), report["flagged"], cfg.Imprimitivity.Output)
		}
	}
}
