// Package table reads and writes the semicolon-delimited, quoted CSV files
// used by the Câmara open-data exports. Rows are kept as positional values
// under an ordered header, so unknown columns pass through untouched.
package table

// Table is an in-memory delimited table. Column order is preserved from the
// source file; Rows hold one value per column.
type Table struct {
	Columns []string
	Rows    [][]string
	Skipped int // malformed rows dropped while reading
}

// Len returns the number of data rows. Safe on a nil table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Col returns the index of the named column, or -1 if absent.
func (t *Table) Col(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Missing returns the subset of required column names not present in the
// table, in the order given.
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if t.Col(name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

// Column returns all values of the named column in row order, or nil if the
// column is absent.
func (t *Table) Column(name string) []string {
	idx := t.Col(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[idx])
	}
	return values
}
