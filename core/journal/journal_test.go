package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"change-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestJournal creates a journal on an in-memory SQLite DB.
func setupTestJournal(t *testing.T, dbName string) *Journal {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	j, err := New(db)
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	return j
}

func sampleSummary() *reconcile.Summary {
	return &reconcile.Summary{
		Fields:  []string{"change id"},
		Deleted: []reconcile.KeyRef{{Key: "A", Row: 2}},
		Kept:    []reconcile.KeyRef{{Key: "B", Row: 2}},
		Added:   []reconcile.KeyRef{{Key: "C", Row: 3}, {Key: "D", Row: 4}},
	}
}

func TestRun_Fill(t *testing.T) {
	run := &Run{}
	run.Fill(sampleSummary())

	assert.Equal(t, 1, run.Kept)
	assert.Equal(t, 2, run.Added)
	assert.Equal(t, 1, run.Deleted)
	assert.Equal(t, []Entry{
		{Action: "delete", Key: "A", Row: 2},
		{Action: "keep", Key: "B", Row: 2},
		{Action: "insert", Key: "C", Row: 3},
		{Action: "insert", Key: "D", Row: 4},
	}, run.Entries)
}

func TestJournal_RecordAndGet(t *testing.T) {
	j := setupTestJournal(t, "journal_record")
	ctx := context.Background()

	run := &Run{Target: "transport.xlsx", Sheet: "charm", Source: "export.csv", Encoding: "utf-8"}
	run.Fill(sampleSummary())

	require.NoError(t, j.Record(ctx, run))
	require.NotEmpty(t, run.ID)
	assert.False(t, run.StartedAt.IsZero())

	got, err := j.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "transport.xlsx", got.Target)
	assert.Equal(t, 2, got.Added)
	require.Len(t, got.Entries, 4)
	assert.Equal(t, "A", got.Entries[0].Key)
	assert.Equal(t, "insert", got.Entries[3].Action)

	// A unique prefix resolves too.
	got, err = j.Get(ctx, run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

func TestJournal_GetNotFound(t *testing.T) {
	j := setupTestJournal(t, "journal_not_found")

	_, err := j.Get(context.Background(), "does-not-exist")
	assert.True(t, errors.Is(err, ErrRunNotFound))

	_, err = j.Get(context.Background(), "")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestJournal_GetAmbiguous(t *testing.T) {
	j := setupTestJournal(t, "journal_ambiguous")
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, &Run{ID: "abc-1"}))
	require.NoError(t, j.Record(ctx, &Run{ID: "abc-2"}))

	_, err := j.Get(ctx, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestJournal_GetTreatsPrefixLiterally(t *testing.T) {
	j := setupTestJournal(t, "journal_literal_prefix")
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, &Run{ID: "abc-1"}))

	for _, id := range []string{"%", "_", "a%", "_bc", "abc_1"} {
		t.Run(id, func(t *testing.T) {
			_, err := j.Get(ctx, id)
			assert.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)
		})
	}

	got, err := j.Get(ctx, "abc-")
	require.NoError(t, err)
	assert.Equal(t, "abc-1", got.ID)
}

func TestJournal_List(t *testing.T) {
	j := setupTestJournal(t, "journal_list")
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.Record(ctx, &Run{
			ID:        fmt.Sprintf("run-%d", i),
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := j.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Empty(t, runs[0].Entries)
}

func TestJournal_RecordError(t *testing.T) {
	sqlDB, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	j := &Journal{db: db}

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `sync_runs`").WillReturnError(errors.New("disk full"))
	sqlMock.ExpectRollback()

	err = j.Record(context.Background(), &Run{ID: "run-x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "run-x")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
