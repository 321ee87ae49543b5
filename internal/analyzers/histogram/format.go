package histogram

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// finalRowLabel replaces the bound column for the end-of-stream row.
const finalRowLabel = "final"

// LaTeXRowSink streams rows as typeset table lines in the reference format:
// ` $N$ & ` between columns, ` $N$ \\  \hline ` terminating the row.
type LaTeXRowSink struct {
	writer io.Writer
}

// NewLaTeXRowSink creates a sink writing typeset rows to writer.
func NewLaTeXRowSink(writer io.Writer) *LaTeXRowSink {
	return &LaTeXRowSink{writer: writer}
}

// WriteRow implements RowSink.
func (s *LaTeXRowSink) WriteRow(row Row) error {
	return writeLaTeXRow(s.writer, row)
}

func writeLaTeXRow(writer io.Writer, row Row) error {
	last := len(row.Counts) - 1

	for _, count := range row.Counts[:last] {
		_, err := fmt.Fprintf(writer, " $%d$ & ", count)
		if err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	_, err := fmt.Fprintf(writer, " $%d$ \\\\  \\hline \n", row.Counts[last])
	if err != nil {
		return fmt.Errorf("write row: %w", err)
	}

	return nil
}

func writeLaTeXRows(writer io.Writer, rows []Row) error {
	for _, row := range rows {
		err := writeLaTeXRow(writer, row)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeTable(writer io.Writer, rows []Row) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(writer)

	header := table.Row{"bound"}
	for bucket := reportFrom; bucket <= reportTo; bucket++ {
		header = append(header, strconv.Itoa(bucket))
	}

	tw.AppendHeader(header)

	for _, row := range rows {
		label := row.Bound
		if row.Final {
			label = finalRowLabel
		}

		tr := table.Row{label}
		for _, count := range row.Counts {
			tr = append(tr, count)
		}

		tw.AppendRow(tr)
	}

	tw.Render()

	return nil
}
