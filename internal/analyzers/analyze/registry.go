package analyze

import (
	"errors"
	"fmt"
	pathpkg "path"
)

// Descriptor contains stable analyzer metadata.
type Descriptor struct {
	ID          string
	Description string
}

// ErrUnknownAnalyzerID is returned when registry lookup fails.
var ErrUnknownAnalyzerID = errors.New("unknown analyzer id")

// ErrDuplicateAnalyzerID is returned when the registry receives duplicate IDs.
var ErrDuplicateAnalyzerID = errors.New("duplicate analyzer id")

// ErrInvalidAnalyzerGlob is returned when a selection pattern is malformed.
var ErrInvalidAnalyzerGlob = errors.New("invalid analyzer glob")

// Registry stores record analyzers with deterministic ordering.
type Registry struct {
	ordered []RecordAnalyzer
	index   map[string]RecordAnalyzer
}

// NewRegistry creates a registry from analyzers, preserving registration order.
func NewRegistry(analyzers ...RecordAnalyzer) (*Registry, error) {
	ordered := make([]RecordAnalyzer, 0, len(analyzers))
	index := make(map[string]RecordAnalyzer, len(analyzers))

	for _, analyzer := range analyzers {
		id := analyzer.Descriptor().ID
		if _, exists := index[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnalyzerID, id)
		}

		index[id] = analyzer
		ordered = append(ordered, analyzer)
	}

	return &Registry{ordered: ordered, index: index}, nil
}

// All returns all analyzers in stable order.
func (r *Registry) All() []RecordAnalyzer {
	analyzers := make([]RecordAnalyzer, len(r.ordered))
	copy(analyzers, r.ordered)

	return analyzers
}

// IDs returns all analyzer IDs in stable order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ordered))
	for i, analyzer := range r.ordered {
		ids[i] = analyzer.Descriptor().ID
	}

	return ids
}

// Get returns the analyzer registered under the given ID.
func (r *Registry) Get(id string) (RecordAnalyzer, bool) {
	analyzer, ok := r.index[id]

	return analyzer, ok
}

// Select resolves IDs and glob patterns to analyzers in registration order.
// Each pattern must match at least one analyzer.
func (r *Registry) Select(patterns []string) ([]RecordAnalyzer, error) {
	selected := make(map[string]bool, len(r.ordered))

	for _, pattern := range patterns {
		matched := false

		for _, analyzer := range r.ordered {
			id := analyzer.Descriptor().ID

			ok, err := pathpkg.Match(pattern, id)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidAnalyzerGlob, pattern)
			}

			if ok {
				selected[id] = true
				matched = true
			}
		}

		if !matched {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAnalyzerID, pattern)
		}
	}

	result := make([]RecordAnalyzer, 0, len(selected))

	for _, analyzer := range r.ordered {
		if selected[analyzer.Descriptor().ID] {
			result = append(result, analyzer)
		}
	}

	return result, nil
}
