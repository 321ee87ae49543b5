// Package textio provides streaming line input and output for factor tables.
// Tables run to multiple gigabytes, so readers never materialize a file;
// they hand out one line at a time.
package textio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Scanner buffer sizing. A line holds one candidate plus its divisors, so
// even extreme records stay far below the cap.
const (
	initialBufSize = 64 * 1024
	maxLineSize    = 4 * 1024 * 1024
)

// Compressed input extensions.
const (
	extGzip = ".gz"
	extLZ4  = ".lz4"
)

// Source yields the lines of a table file in order, transparently
// decompressing .gz and .lz4 inputs by extension.
type Source struct {
	scanner *bufio.Scanner
	closers []io.Closer
	line    int
}

// Open opens path for line-by-line reading.
func Open(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	reader, closers, err := wrapDecompression(file, path)
	if err != nil {
		file.Close()

		return nil, err
	}

	return NewSource(reader, closers...), nil
}

// NewSource creates a Source over an arbitrary reader. The closers, if any,
// are closed by Close in reverse order.
func NewSource(reader io.Reader, closers ...io.Closer) *Source {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, initialBufSize), maxLineSize)

	return &Source{scanner: scanner, closers: closers}
}

func wrapDecompression(file *os.File, path string) (io.Reader, []io.Closer, error) {
	switch {
	case strings.HasSuffix(path, extGzip):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip input: %w", err)
		}

		return gz, []io.Closer{gz, file}, nil
	case strings.HasSuffix(path, extLZ4):
		return lz4.NewReader(file), []io.Closer{file}, nil
	default:
		return file, []io.Closer{file}, nil
	}
}

// Scan advances to the next line. It returns false at end of input or on
// a read error; check Err afterwards.
func (s *Source) Scan() bool {
	if s.scanner.Scan() {
		s.line++

		return true
	}

	return false
}

// Line returns the current line without its terminator.
func (s *Source) Line() string {
	return s.scanner.Text()
}

// LineNumber returns the 1-based number of the current line.
func (s *Source) LineNumber() int {
	return s.line
}

// Err returns the first error encountered while reading.
func (s *Source) Err() error {
	err := s.scanner.Err()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return nil
}

// Close releases the underlying file and decompressor.
func (s *Source) Close() error {
	var firstErr error

	for _, closer := range s.closers {
		err := closer.Close()
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
