package domain

// Table is the working table: one header row plus string cells.
// An empty cell is the missing-value marker.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	if t == nil {
		return 0, 0
	}
	return len(t.Rows), len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
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

// Head returns a copy of the first n rows. n <= 0 or n past the end
// means all rows. Row slices are copied so the result does not alias
// the original.
func (t *Table) Head(n int) *Table {
	if t == nil {
		return nil
	}
	if n <= 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, n),
	}
	for i := 0; i < n; i++ {
		out.Rows[i] = append([]string(nil), t.Rows[i]...)
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	return t.Head(len(t.Rows))
}
