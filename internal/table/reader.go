package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Delimiter used by every export this tool consumes.
const Delimiter = ';'

// ReadFile parses a delimited file into a Table. The first record is the
// header. Rows whose field count does not match the header, and rows the
// CSV parser rejects outright, are skipped and counted rather than failing
// the read; the source feeds routinely contain a handful of broken lines.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses delimited data from r into a Table.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			t.Skipped++
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(record) != len(header) {
			t.Skipped++
			continue
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}
