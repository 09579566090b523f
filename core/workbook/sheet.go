package workbook

import (
	"fmt"
	"sort"

	"change-sync/core/reconcile"

	"github.com/xuri/excelize/v2"
)

var _ reconcile.Store = (*Sheet)(nil)

// Sheet is one worksheet exposed as a reconcile.Store.
// Cell values are read once when the sheet is selected and kept in step
// with every mutation.
type Sheet struct {
	file  *excelize.File
	name  string
	rows  [][]string
	style *int
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

func (s *Sheet) Header() []string {
	if len(s.rows) == 0 {
		return nil
	}
	return append([]string(nil), s.rows[0]...)
}

func (s *Sheet) MaxRow() int {
	return len(s.rows)
}

func (s *Sheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) || col < 1 {
		return ""
	}
	r := s.rows[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

func (s *Sheet) DeleteRow(row int) error {
	if row < 2 || row > len(s.rows) {
		return fmt.Errorf("row %d out of range [2, %d]", row, len(s.rows))
	}
	if err := s.file.RemoveRow(s.name, row); err != nil {
		return fmt.Errorf("failed to remove row %d from %s: %w", row, s.name, err)
	}
	s.rows = append(s.rows[:row-1], s.rows[row:]...)
	return nil
}

// AppendRow writes the values below the last used row. Every written cell
// gets an explicit no-fill style so it never inherits the formatting of
// rows that were deleted or styled beforehand.
func (s *Sheet) AppendRow(values map[int]string) (int, error) {
	style, err := s.neutralStyle()
	if err != nil {
		return 0, err
	}

	row := len(s.rows) + 1
	cols := make([]int, 0, len(values))
	width := 0
	for col := range values {
		if col < 1 {
			return 0, fmt.Errorf("invalid column %d", col)
		}
		cols = append(cols, col)
		if col > width {
			width = col
		}
	}
	sort.Ints(cols)

	cached := make([]string, width)
	for _, col := range cols {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return 0, fmt.Errorf("invalid cell (%d, %d): %w", col, row, err)
		}
		if err := s.file.SetCellStr(s.name, cell, values[col]); err != nil {
			return 0, fmt.Errorf("failed to set %s!%s: %w", s.name, cell, err)
		}
		if err := s.file.SetCellStyle(s.name, cell, cell, style); err != nil {
			return 0, fmt.Errorf("failed to style %s!%s: %w", s.name, cell, err)
		}
		cached[col-1] = values[col]
	}

	s.rows = append(s.rows, cached)
	return row, nil
}

// neutralStyle registers, once per sheet, a style with an explicit empty fill.
func (s *Sheet) neutralStyle() (int, error) {
	if s.style != nil {
		return *s.style, nil
	}
	id, err := s.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 0},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create cell style: %w", err)
	}
	s.style = &id
	return id, nil
}
