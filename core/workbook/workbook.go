package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"change-sync/core/reconcile"

	"github.com/xuri/excelize/v2"
)

// Workbook is an xlsx file opened for reconciliation.
// All mutations stay in memory until Save.
type Workbook struct {
	file *excelize.File
	path string
}

// Open loads the workbook at path.
// A missing file wraps reconcile.ErrFileNotFound; a file excelize cannot
// parse wraps reconcile.ErrUnreadableFormat.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", reconcile.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat workbook %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: workbook %s: %v", reconcile.ErrUnreadableFormat, path, err)
	}

	return &Workbook{file: f, path: path}, nil
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// Sheet selects a sheet by exact name and loads its rows.
// It fails with a *reconcile.SectionNotFoundError listing the available sheets.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	found := false
	for _, s := range w.file.GetSheetList() {
		if s == name {
			found = true
			break
		}
	}
	if !found {
		return nil, &reconcile.SectionNotFoundError{Name: name, Available: w.file.GetSheetList()}
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", reconcile.ErrUnreadableFormat, name, err)
	}

	return &Sheet{file: w.file, name: name, rows: rows}, nil
}

// newFileMode is the mode of a workbook saved to a path that did not exist.
const newFileMode os.FileMode = 0o644

// Save writes the workbook to path atomically: the content goes to a
// temporary file in the destination directory which then replaces path.
// If any step fails the destination is left as it was.
func (w *Workbook) Save(path string) (err error) {
	if path == "" {
		path = w.path
	}
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = w.file.WriteTo(tmp); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Keep the destination's permissions when overwriting, otherwise use the
	// usual mode for a new document instead of the temp file's 0600.
	perm := newFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s (is it open in another program?): %w", path, err)
	}

	return nil
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
