package journal

import (
	"time"

	"change-sync/core/reconcile"
)

// Run is one recorded reconciliation.
type Run struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	StartedAt  time.Time `gorm:"index" json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Target     string    `gorm:"size:1024" json:"target"`
	Sheet      string    `gorm:"size:255" json:"sheet"`
	Source     string    `gorm:"size:1024" json:"source"`
	Output     string    `gorm:"size:1024" json:"output"`
	Encoding   string    `gorm:"size:32" json:"encoding"`
	DryRun     bool      `json:"dry_run"`
	Kept       int       `json:"kept"`
	Added      int       `json:"added"`
	Deleted    int       `json:"deleted"`
	Entries    []Entry   `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// TableName overrides the default table name.
func (Run) TableName() string { return "sync_runs" }

// Entry is one key-level action of a run.
type Entry struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	RunID  string `gorm:"size:36;index" json:"-"`
	Action string `gorm:"size:16" json:"action"`
	Key    string `gorm:"column:record_key;size:255" json:"key"`
	Row    int    `gorm:"column:row_num" json:"row"`
}

// TableName overrides the default table name.
func (Entry) TableName() string { return "sync_entries" }

// Fill copies counts and per-key entries from a summary into the run.
// Entries are ordered deleted, kept, added.
func (r *Run) Fill(s *reconcile.Summary) {
	r.Kept, r.Added, r.Deleted = s.Counts()
	r.Entries = r.Entries[:0]

	add := func(action reconcile.ActionType, refs []reconcile.KeyRef) {
		for _, ref := range refs {
			r.Entries = append(r.Entries, Entry{Action: string(action), Key: ref.Key, Row: ref.Row})
		}
	}
	add(reconcile.ActionDelete, s.Deleted)
	add(reconcile.ActionKeep, s.Kept)
	add(reconcile.ActionInsert, s.Added)
}
