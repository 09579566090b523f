package reconcile

// Store defines the row-oriented target a reconciliation mutates.
// Rows and columns are 1-based; row 1 is the header row and data rows start at 2.
// Implementations decide how (and whether) the mutations reach persistent storage.
type Store interface {
	// Header returns the raw header cells, column 1 first.
	Header() []string

	// MaxRow returns the number of the last used row, header included.
	// A store with only a header returns 1; an empty store returns 0.
	MaxRow() int

	// Cell returns the string value at the given row and column,
	// or "" when the cell is empty or out of range.
	Cell(row, col int) string

	// DeleteRow removes a row and shifts every following row up by one.
	DeleteRow(row int) error

	// AppendRow writes a new row after MaxRow, setting only the given
	// column values, and returns the row number it was written to.
	AppendRow(values map[int]string) (int, error)
}
