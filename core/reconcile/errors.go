package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure modes detected before any mutation.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrUnreadableFormat = errors.New("unreadable format")
	ErrSectionNotFound  = errors.New("section not found")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrEmptySource      = errors.New("source is empty")
)

// SectionNotFoundError reports a missing named section of the target and
// the sections that do exist.
type SectionNotFoundError struct {
	Name      string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Is matches ErrSectionNotFound.
func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrSectionNotFound
}

// Side names which collection a schema error was found in.
type Side string

const (
	SideTarget Side = "target"
	SideSource Side = "source"
)

// SchemaMismatchError reports a required field missing from one side.
type SchemaMismatchError struct {
	Field string
	Side  Side
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("required field %q not found in %s header", e.Field, e.Side)
}

// Is matches ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
