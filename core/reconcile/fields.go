package reconcile

import "strings"

// Normalize returns the canonical form of a field name: trimmed and lower-cased.
// Header cells and configured field names both go through it.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeKey returns the canonical form of a key value.
// Keys are compared as trimmed strings; case is significant.
func NormalizeKey(value string) string {
	return strings.TrimSpace(value)
}

// FieldSet is the resolved sync field set.
type FieldSet struct {
	// Key is the normalized key field name.
	Key string

	// Fields lists the normalized synced field names: required fields in
	// configuration order, then optional fields found in the source header.
	Fields []string

	// Target maps a normalized field name to its 1-based target column.
	// Optional fields missing from the target header have no entry.
	Target map[string]int

	// Source maps a normalized field name to its 1-based source column.
	Source map[string]int
}

// KeyColumns returns the key's target and source column numbers.
func (fs *FieldSet) KeyColumns() (target, source int) {
	return fs.Target[fs.Key], fs.Source[fs.Key]
}

// headerIndex maps normalized header names to 1-based column numbers.
// Blank header cells are skipped; the first occurrence of a name wins.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		name := Normalize(cell)
		if name == "" {
			continue
		}
		if _, exists := index[name]; exists {
			continue
		}
		index[name] = i + 1
	}
	return index
}

// ResolveFields checks that every required field, the key included, exists
// in both headers and returns the sync field set.
// It fails with a *SchemaMismatchError naming the first missing field.
func ResolveFields(targetHeader, sourceHeader []string, spec FieldSpec) (*FieldSet, error) {
	targetIdx := headerIndex(targetHeader)
	sourceIdx := headerIndex(sourceHeader)

	key := Normalize(spec.Key)
	required := normalizeNames(append([]string{spec.Key}, spec.Required...))
	if key == "" && len(required) > 0 {
		key = required[0]
	}
	if key == "" {
		return nil, &SchemaMismatchError{Field: spec.Key, Side: SideTarget}
	}

	fs := &FieldSet{
		Key:    key,
		Target: make(map[string]int),
		Source: make(map[string]int),
	}

	for _, name := range required {
		col, ok := targetIdx[name]
		if !ok {
			return nil, &SchemaMismatchError{Field: name, Side: SideTarget}
		}
		src, ok := sourceIdx[name]
		if !ok {
			return nil, &SchemaMismatchError{Field: name, Side: SideSource}
		}
		fs.Fields = append(fs.Fields, name)
		fs.Target[name] = col
		fs.Source[name] = src
	}

	for _, name := range normalizeNames(spec.Optional) {
		if _, dup := fs.Source[name]; dup {
			continue
		}
		src, ok := sourceIdx[name]
		if !ok {
			continue
		}
		fs.Fields = append(fs.Fields, name)
		fs.Source[name] = src
		if col, ok := targetIdx[name]; ok {
			fs.Target[name] = col
		}
	}

	return fs, nil
}

// normalizeNames normalizes and de-duplicates names, dropping blanks.
func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		name := Normalize(n)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
