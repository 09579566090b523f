package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned when no run matches an identifier.
var ErrRunNotFound = errors.New("run not found")

// Journal records reconciliation runs.
type Journal struct {
	db *gorm.DB
}

// New migrates the journal tables and returns a Journal.
func New(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&Run{}, &Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record stores a run and its entries in one transaction.
// A run without an ID gets a new UUID.
func (j *Journal) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	if err := j.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs without their entries, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := j.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns a run with its entries. The identifier may be a unique
// prefix of the run ID.
func (j *Journal) Get(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}

	var runs []Run
	err := j.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("substr(id, 1, ?) = ?", len(id), id).
		Limit(2).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return &runs[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}
