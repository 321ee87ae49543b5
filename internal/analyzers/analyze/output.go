package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when a serialization format is not recognized.
var ErrUnknownFormat = errors.New("unknown output format")

// OutputResults serializes the reports of all selected analyzers in order.
func OutputResults(
	leaves []RecordAnalyzer,
	results map[RecordAnalyzer]Report,
	format string,
	writer io.Writer,
) error {
	if writer == nil {
		writer = os.Stdout
	}

	for _, leaf := range leaves {
		res := results[leaf]
		if res == nil {
			continue
		}

		serializeErr := leaf.Serialize(res, format, writer)
		if serializeErr != nil {
			return fmt.Errorf("serialization error for %s: %w", leaf.Descriptor().ID, serializeErr)
		}
	}

	return nil
}

// SerializeJSON writes a value as indented JSON.
func SerializeJSON(value any, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// SerializeYAML writes a value as YAML.
func SerializeYAML(value any, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return encoder.Close()
}
