package catalog

import "fmt"

// TrendingColumn is the name of the column added by Enrich.
const TrendingColumn = "isTrending"

// Table is an in-memory product sheet. Every row has exactly len(Columns)
// cells; a cell holds a string, float64, bool, time.Time or nil.
type Table struct {
	Sheet   string
	Columns []string
	Rows    [][]any
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// AppendColumn adds a column after the existing ones, one value per row.
func (t *Table) AppendColumn(name string, values []any) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}

	width := len(t.Columns)
	t.Columns = append(t.Columns, name)
	for i, row := range t.Rows {
		for len(row) < width {
			row = append(row, nil)
		}
		t.Rows[i] = append(row[:width], values[i])
	}
	return nil
}

// Bools returns the named column as booleans; non-bool cells read as false.
func (t *Table) Bools(name string) ([]bool, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}

	out := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			b, _ := row[idx].(bool)
			out[i] = b
		}
	}
	return out, nil
}
