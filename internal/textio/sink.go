package textio

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// LineSink writes newline-terminated lines through a buffered writer.
type LineSink struct {
	writer *bufio.Writer
	closer io.Closer
}

// Create creates (or truncates) path and returns a sink over it.
func Create(path string) (*LineSink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	sink := NewLineSink(file)
	sink.closer = file

	return sink, nil
}

// NewLineSink creates a sink over an arbitrary writer.
func NewLineSink(writer io.Writer) *LineSink {
	return &LineSink{writer: bufio.NewWriter(writer)}
}

// WriteLine writes one line followed by a newline.
func (s *LineSink) WriteLine(line string) error {
	_, err := s.writer.WriteString(line)
	if err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	err = s.writer.WriteByte('\n')
	if err != nil {
		return fmt.Errorf("write line: %w", err)
	}

	return nil
}

// Close flushes buffered output and closes the underlying file, if any.
func (s *LineSink) Close() error {
	err := s.writer.Flush()
	if err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	if s.closer != nil {
		closeErr := s.closer.Close()
		if closeErr != nil {
			return fmt.Errorf("close output: %w", closeErr)
		}
	}

	return nil
}
