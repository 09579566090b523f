package reconcile

import "fmt"

// Table is an in-memory Store. Row 1 is the header.
type Table struct {
	rows [][]string
}

// NewTable creates a table from a header and data rows. The rows are copied.
func NewTable(header []string, rows ...[]string) *Table {
	t := &Table{rows: make([][]string, 0, len(rows)+1)}
	t.rows = append(t.rows, append([]string(nil), header...))
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return t
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{rows: make([][]string, len(t.rows))}
	for i, r := range t.rows {
		c.rows[i] = append([]string(nil), r...)
	}
	return c
}

// Rows returns a copy of the data rows below the header.
func (t *Table) Rows() [][]string {
	if len(t.rows) < 2 {
		return nil
	}
	out := make([][]string, 0, len(t.rows)-1)
	for _, r := range t.rows[1:] {
		out = append(out, append([]string(nil), r...))
	}
	return out
}

func (t *Table) Header() []string {
	if len(t.rows) == 0 {
		return nil
	}
	return append([]string(nil), t.rows[0]...)
}

func (t *Table) MaxRow() int {
	return len(t.rows)
}

func (t *Table) Cell(row, col int) string {
	if row < 1 || row > len(t.rows) || col < 1 {
		return ""
	}
	r := t.rows[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

func (t *Table) DeleteRow(row int) error {
	if row < 2 || row > len(t.rows) {
		return fmt.Errorf("row %d out of range [2, %d]", row, len(t.rows))
	}
	t.rows = append(t.rows[:row-1], t.rows[row:]...)
	return nil
}

func (t *Table) AppendRow(values map[int]string) (int, error) {
	width := 0
	for col := range values {
		if col < 1 {
			return 0, fmt.Errorf("invalid column %d", col)
		}
		if col > width {
			width = col
		}
	}
	r := make([]string, width)
	for col, v := range values {
		r[col-1] = v
	}
	t.rows = append(t.rows, r)
	return len(t.rows), nil
}
