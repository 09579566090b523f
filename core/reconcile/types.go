package reconcile

// Record maps a normalized field name to the value carried by one source row.
type Record map[string]string

// Source is an authoritative snapshot: a header row followed by data rows.
// Rows may be ragged; missing trailing cells read as empty.
type Source struct {
	// Header holds the raw header cells of the snapshot.
	Header []string

	// Rows holds the data rows below the header.
	Rows [][]string
}

// FieldSpec names the fields taking part in a reconciliation.
// Names are matched case-insensitively after trimming.
type FieldSpec struct {
	// Key is the field whose value identifies a record.
	Key string

	// Required fields must exist in both the target and the source header.
	Required []string

	// Optional fields are synced when the source header carries them.
	Optional []string
}

// KeyRef points at a record by key and the row it occupied when the action ran.
type KeyRef struct {
	Key string `json:"key"`
	Row int    `json:"row"`
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDelete removes a target row whose key is absent from the source.
	ActionDelete ActionType = "delete"
	// ActionKeep leaves a target row untouched because its key is in both.
	ActionKeep ActionType = "keep"
	// ActionInsert appends a source record whose key is absent from the target.
	ActionInsert ActionType = "insert"
)

// Action represents a planned operation on one key.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the normalized record key.
	Key string `json:"key"`

	// Row is the target row the action reads or removes.
	// Zero for inserts, whose row is only known once applied.
	Row int `json:"row,omitempty"`

	// Values stores the synced field values for inserts.
	Values Record `json:"values,omitempty"`
}

// Plan contains the ordered actions for one reconciliation.
// Deletes come first, in descending row order, then keeps, then inserts
// in source order.
type Plan struct {
	// Fields is the resolved sync field set the plan was built with.
	Fields *FieldSet `json:"-"`

	// Actions contains planned operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Kept counts keys present in both target and source.
	Kept int `json:"kept"`

	// Added counts source keys missing from the target.
	Added int `json:"added"`

	// Deleted counts target rows whose key is missing from the source.
	Deleted int `json:"deleted"`

	// SkippedTarget counts target rows ignored because their key is blank.
	SkippedTarget int `json:"skipped_target"`

	// SkippedSource counts source rows ignored because their key is blank
	// or the row is too short to carry it.
	SkippedSource int `json:"skipped_source"`

	// Duplicates lists target keys that occupy more than one row.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Summary is the outcome of an applied reconciliation.
type Summary struct {
	// Fields lists the synced field names in resolution order.
	Fields []string `json:"fields"`

	// Kept lists records left untouched, with their post-deletion rows.
	Kept []KeyRef `json:"kept"`

	// Added lists appended records with the rows they were written to.
	Added []KeyRef `json:"added"`

	// Deleted lists removed records with the rows they occupied before deletion.
	Deleted []KeyRef `json:"deleted"`

	// SkippedTarget counts target rows ignored because their key is blank.
	SkippedTarget int `json:"skipped_target"`

	// SkippedSource counts source rows ignored because their key is blank.
	SkippedSource int `json:"skipped_source"`

	// Duplicates lists target keys that occupy more than one row.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Counts returns the kept, added and deleted totals.
func (s *Summary) Counts() (kept, added, deleted int) {
	return len(s.Kept), len(s.Added), len(s.Deleted)
}

// Changed reports whether applying the reconciliation mutated the store.
func (s *Summary) Changed() bool {
	return len(s.Added) > 0 || len(s.Deleted) > 0
}
