package reconcile

import (
	"fmt"
	"sort"
)

// TargetIndex maps target keys to the rows holding them.
type TargetIndex struct {
	// Rows maps a key to its row numbers in ascending order.
	Rows map[string][]int

	// Order lists keys by the row of their first appearance.
	Order []string

	// Skipped counts data rows with a blank key.
	Skipped int
}

// Duplicates returns the keys held by more than one row, sorted.
func (ti *TargetIndex) Duplicates() []string {
	var dups []string
	for key, rows := range ti.Rows {
		if len(rows) > 1 {
			dups = append(dups, key)
		}
	}
	sort.Strings(dups)
	return dups
}

// SourceIndex maps source keys to their synced-field records.
type SourceIndex struct {
	// Records maps a key to the synced values of its last occurrence.
	Records map[string]Record

	// Order lists keys by first appearance.
	Order []string

	// Skipped counts rows with a blank key or too short to carry it.
	Skipped int
}

// IndexTarget scans the store's data rows and indexes them by key.
func IndexTarget(store Store, fields *FieldSet) *TargetIndex {
	col := fields.Target[fields.Key]
	idx := &TargetIndex{Rows: make(map[string][]int)}

	for row := 2; row <= store.MaxRow(); row++ {
		key := NormalizeKey(store.Cell(row, col))
		if key == "" {
			idx.Skipped++
			continue
		}
		if _, exists := idx.Rows[key]; !exists {
			idx.Order = append(idx.Order, key)
		}
		idx.Rows[key] = append(idx.Rows[key], row)
	}

	return idx
}

// IndexSource indexes the source rows by key, keeping only synced fields.
func IndexSource(src *Source, fields *FieldSet) *SourceIndex {
	keyCol := fields.Source[fields.Key]
	idx := &SourceIndex{Records: make(map[string]Record, len(src.Rows))}

	for _, row := range src.Rows {
		if keyCol < 1 || len(row) < keyCol {
			idx.Skipped++
			continue
		}
		key := NormalizeKey(row[keyCol-1])
		if key == "" {
			idx.Skipped++
			continue
		}

		rec := make(Record, len(fields.Fields))
		for _, name := range fields.Fields {
			col := fields.Source[name]
			if col >= 1 && col <= len(row) {
				rec[name] = row[col-1]
			}
		}

		if _, exists := idx.Records[key]; !exists {
			idx.Order = append(idx.Order, key)
		}
		idx.Records[key] = rec
	}

	return idx
}

// BuildPlan computes the actions turning the store's key set into the
// source's key set. It does NOT mutate the store; use Apply for that.
func BuildPlan(store Store, src *Source, fields *FieldSet) *Plan {
	target := IndexTarget(store, fields)
	source := IndexSource(src, fields)

	plan := &Plan{Fields: fields}

	var deletes []Action
	for _, key := range target.Order {
		if _, ok := source.Records[key]; ok {
			continue
		}
		for _, row := range target.Rows[key] {
			deletes = append(deletes, Action{Type: ActionDelete, Key: key, Row: row})
		}
	}
	sortDescending(deletes)
	plan.Actions = append(plan.Actions, deletes...)

	var inserts []Action
	for _, key := range source.Order {
		if rows, ok := target.Rows[key]; ok {
			plan.Actions = append(plan.Actions, Action{Type: ActionKeep, Key: key, Row: rows[0]})
			plan.Summary.Kept++
			continue
		}
		inserts = append(inserts, Action{Type: ActionInsert, Key: key, Values: source.Records[key]})
	}
	plan.Actions = append(plan.Actions, inserts...)

	plan.Summary.Deleted = len(deletes)
	plan.Summary.Added = len(inserts)
	plan.Summary.SkippedTarget = target.Skipped
	plan.Summary.SkippedSource = source.Skipped
	plan.Summary.Duplicates = target.Duplicates()

	return plan
}

// Apply executes a plan against the store it was built from.
// Every delete is checked against the store before the first mutation, so a
// stale plan fails without touching the store. Deletes run from the highest
// row down; the store is then re-indexed and inserts are appended at the end.
func Apply(store Store, plan *Plan) (*Summary, error) {
	fields := plan.Fields
	if fields == nil {
		return nil, fmt.Errorf("plan has no field set")
	}
	keyCol := fields.Target[fields.Key]

	var deletes []Action
	for _, a := range plan.Actions {
		if a.Type != ActionDelete {
			continue
		}
		if got := NormalizeKey(store.Cell(a.Row, keyCol)); got != a.Key {
			return nil, fmt.Errorf("stale plan: row %d holds key %q, expected %q", a.Row, got, a.Key)
		}
		deletes = append(deletes, a)
	}
	sortDescending(deletes)

	summary := &Summary{
		Fields:        append([]string(nil), fields.Fields...),
		SkippedTarget: plan.Summary.SkippedTarget,
		SkippedSource: plan.Summary.SkippedSource,
		Duplicates:    plan.Summary.Duplicates,
	}

	for _, a := range deletes {
		if err := store.DeleteRow(a.Row); err != nil {
			return nil, fmt.Errorf("failed to delete row %d (key %s): %w", a.Row, a.Key, err)
		}
		summary.Deleted = append(summary.Deleted, KeyRef{Key: a.Key, Row: a.Row})
	}
	// Deleted is reported in ascending row order for readability.
	sort.Slice(summary.Deleted, func(i, j int) bool {
		return summary.Deleted[i].Row < summary.Deleted[j].Row
	})

	// Row numbers shifted; never reuse pre-deletion positions from here on.
	post := IndexTarget(store, fields)

	for _, a := range plan.Actions {
		switch a.Type {
		case ActionKeep, ActionInsert:
		default:
			continue
		}

		if rows, ok := post.Rows[a.Key]; ok {
			summary.Kept = append(summary.Kept, KeyRef{Key: a.Key, Row: rows[0]})
			continue
		}
		if a.Type == ActionKeep {
			return nil, fmt.Errorf("stale plan: kept key %q not found after deletion", a.Key)
		}

		row, err := store.AppendRow(insertValues(fields, a.Values))
		if err != nil {
			return nil, fmt.Errorf("failed to append key %s: %w", a.Key, err)
		}
		post.Rows[a.Key] = []int{row}
		summary.Added = append(summary.Added, KeyRef{Key: a.Key, Row: row})
	}

	return summary, nil
}

// Reconcile plans and applies in one step.
func Reconcile(store Store, src *Source, fields *FieldSet) (*Summary, error) {
	return Apply(store, BuildPlan(store, src, fields))
}

// Run resolves the field set from both headers and reconciles. A schema
// mismatch is reported before the store is touched.
func Run(store Store, src *Source, spec FieldSpec) (*Summary, error) {
	fields, err := ResolveFields(store.Header(), src.Header, spec)
	if err != nil {
		return nil, err
	}
	return Reconcile(store, src, fields)
}

// Reconciled is the pure form of Run: before is never mutated, and the
// reconciled copy is returned with its summary.
func Reconciled(before *Table, src *Source, spec FieldSpec) (*Table, *Summary, error) {
	after := before.Clone()
	summary, err := Run(after, src, spec)
	if err != nil {
		return nil, nil, err
	}
	return after, summary, nil
}

// insertValues maps a record's synced values onto target columns.
// Fields without a target column are dropped.
func insertValues(fields *FieldSet, rec Record) map[int]string {
	values := make(map[int]string, len(rec))
	for _, name := range fields.Fields {
		col, ok := fields.Target[name]
		if !ok {
			continue
		}
		v, ok := rec[name]
		if !ok {
			continue
		}
		values[col] = v
	}
	return values
}

func sortDescending(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Row > actions[j].Row
	})
}
