package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteFile serializes the table to path. An empty table is skipped rather
// than producing a header-only file; the boolean reports whether a file was
// written so the caller can log the omission.
func WriteFile(path string, t *Table) (bool, error) {
	if t.Empty() {
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return false, err
	}

	if err := Write(f, t); err != nil {
		f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Write serializes the table to w, header first.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
