// Package analyze defines the contracts shared by all record analyzers.
package analyze

import (
	"io"

	"github.com/gustavo-bravo11/CPSC571-Carmichael-Storage/internal/record"
)

// Report is a map of string keys to arbitrary values representing analysis output.
type Report = map[string]any

// Serialization format constants.
const (
	FormatLaTeX = "latex"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatPlot  = "plot"
)

// Context provides information about the current record in the stream.
type Context struct {
	// Record is the parsed line.
	Record *record.Record

	// Raw is the original line text, verbatim. Filters emit Raw rather than
	// a reconstruction so the source formatting survives untouched.
	Raw string

	// Index is the 1-based line number within the input.
	Index int
}

// ConfigurationOptionType represents the possible types of a ConfigurationOption's value.
type ConfigurationOptionType int

const (
	// BoolConfigurationOption reflects the boolean value type.
	BoolConfigurationOption ConfigurationOptionType = iota
	// IntConfigurationOption reflects the integer value type.
	IntConfigurationOption
	// StringConfigurationOption reflects the string value type.
	StringConfigurationOption
	// PathConfigurationOption reflects the file system path value type.
	PathConfigurationOption
)

// ConfigurationOption allows for the unified, retrospective way to set up analyzers.
type ConfigurationOption struct {
	// Default is the initial value of the configuration option.
	Default any
	// Name identifies the configuration option in facts.
	Name string
	// Description represents the help text about the configuration option.
	Description string
	// Flag corresponds to the CLI token with "--" prepended.
	Flag string
	// Type specifies the kind of the configuration option's value.
	Type ConfigurationOptionType
}

// LineSink receives selected source lines, verbatim, in stream order.
// *textio.LineSink satisfies it.
type LineSink interface {
	WriteLine(line string) error
}

// Analyzer is the common base interface for all analyzers.
type Analyzer interface {
	Descriptor() Descriptor

	// Configuration.
	ListConfigurationOptions() []ConfigurationOption
	Configure(facts map[string]any) error
}

// RecordAnalyzer is the contract for analyses that consume the record stream.
// The runner makes a single pass over the input and calls Consume once per
// record, in file order, for every selected analyzer. Analyzers never share
// state; each keeps its own accumulator.
type RecordAnalyzer interface {
	Analyzer

	// Initialize prepares the analyzer for a fresh run.
	Initialize() error

	// Consume processes one record.
	Consume(ctx *Context) error

	// Finalize completes the run and returns the result report.
	Finalize() (Report, error)

	// Serialize writes a report in the given format.
	// Format can be: "latex", "table", "json", "yaml", or "plot".
	Serialize(report Report, format string, writer io.Writer) error
}
