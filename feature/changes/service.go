package changes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"change-sync/core/journal"
	"change-sync/core/logger"
	"change-sync/core/reconcile"
	"change-sync/core/snapshot"
	"change-sync/core/workbook"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder persists run history. *journal.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, run *journal.Run) error
}

// Request describes one sync invocation.
type Request struct {
	// Target is the workbook to update.
	Target string
	// Source is the CSV export that decides which keys exist.
	Source string
	// Sheet is the target sheet; empty means the configured default.
	Sheet string
	// Output is where the updated workbook is written; empty overwrites Target.
	Output string
	// DryRun plans without writing anything.
	DryRun bool
}

// Outcome is the result of a sync.
type Outcome struct {
	RunID    string
	Request  Request
	Output   string
	Encoding string
	Fallback bool
	Plan     *reconcile.Plan
	Summary  *reconcile.Summary
	Saved    bool
	Recorded bool
}

// Service handles change synchronization.
type Service struct {
	logger   *zap.Logger
	recorder Recorder
	fields   reconcile.Config
	source   snapshot.Config
}

// NewService creates a new change sync service. recorder may be nil to
// disable run history.
func NewService(logger *zap.Logger, recorder Recorder, fields reconcile.Config, source snapshot.Config) *Service {
	return &Service{
		logger:   logger,
		recorder: recorder,
		fields:   fields,
		source:   source,
	}
}

// Sync reconciles the target sheet against the source export and saves it.
// Every precondition (files, sheet, export, schema) is checked before the
// workbook is mutated, and the workbook only reaches disk in a single save
// at the end.
func (s *Service) Sync(ctx context.Context, req Request) (*Outcome, error) {
	if req.Sheet == "" {
		req.Sheet = s.fields.Sheet
	}
	output := req.Output
	if output == "" {
		output = req.Target
	}

	runID := uuid.NewString()
	l := logger.WithRunID(s.logger, runID)
	started := time.Now()

	l.Info("Starting sync",
		zap.String("target", req.Target),
		zap.String("source", req.Source),
		zap.String("sheet", req.Sheet),
		zap.String("output", output),
		zap.Bool("dry_run", req.DryRun),
	)

	for _, path := range []string{req.Target, req.Source} {
		if err := checkFile(path); err != nil {
			return nil, err
		}
	}

	wb, err := workbook.Open(req.Target)
	if err != nil {
		if errors.Is(err, reconcile.ErrUnreadableFormat) {
			l.Warn("Workbook could not be loaded",
				zap.Strings("hints", []string{
					"open the file in the spreadsheet program and check it opens correctly",
					"save it again as a new .xlsx workbook",
					"make sure the file is not open in another program",
				}),
			)
		}
		return nil, err
	}
	defer wb.Close()
	l.Debug("Workbook loaded", zap.String("path", wb.Path()), zap.Strings("sheets", wb.Sheets()))

	sheet, err := wb.Sheet(req.Sheet)
	if err != nil {
		return nil, err
	}

	src, err := snapshot.Load(req.Source, s.source)
	if err != nil {
		return nil, err
	}
	if src.Fallback {
		l.Warn("Export is not valid UTF-8, decoded with fallback encoding",
			zap.String("encoding", src.Encoding),
			zap.NamedError("primary_error", src.PrimaryErr),
		)
	}
	l.Info("Export loaded", zap.Int("rows", len(src.Rows)), zap.String("encoding", src.Encoding))

	plan, err := reconcile.ReconcileWithPlan(sheet, src.Source, s.fields.FieldSpec())
	if err != nil {
		return nil, err
	}
	l.Info("Columns to sync",
		zap.String("sheet", sheet.Name()),
		zap.String("fields", strings.Join(plan.Fields.Fields, ", ")),
	)
	if len(plan.Summary.Duplicates) > 0 {
		l.Warn("Duplicate keys in target", zap.Strings("keys", plan.Summary.Duplicates))
	}

	summary, err := reconcile.ApplyPlan(sheet, plan, reconcile.ReconcileOptions{DryRun: req.DryRun})
	if err != nil {
		return nil, fmt.Errorf("failed to apply plan: %w", err)
	}

	outcome := &Outcome{
		RunID:    runID,
		Request:  req,
		Output:   output,
		Encoding: src.Encoding,
		Fallback: src.Fallback,
		Plan:     plan,
		Summary:  summary,
	}

	if req.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	} else {
		if err := wb.Save(output); err != nil {
			return nil, fmt.Errorf("failed to save workbook: %w", err)
		}
		outcome.Saved = true
		l.Info("Saved updated workbook", zap.String("output", output))
	}

	kept, added, deleted := summary.Counts()
	l.Info("Sync complete",
		zap.Int("kept", kept),
		zap.Int("added", added),
		zap.Int("deleted", deleted),
	)

	outcome.Recorded = s.record(ctx, l, outcome, started)
	return outcome, nil
}

// record writes the run to the journal. Failures are logged, never returned.
func (s *Service) record(ctx context.Context, l *zap.Logger, o *Outcome, started time.Time) bool {
	if s.recorder == nil {
		return false
	}

	run := &journal.Run{
		ID:         o.RunID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Target:     o.Request.Target,
		Sheet:      o.Request.Sheet,
		Source:     o.Request.Source,
		Output:     o.Output,
		Encoding:   o.Encoding,
		DryRun:     o.Request.DryRun,
	}
	run.Fill(o.Summary)

	if err := s.recorder.Record(ctx, run); err != nil {
		l.Warn("Failed to record run in journal", zap.Error(err))
		return false
	}
	return true
}

// checkFile fails fast with reconcile.ErrFileNotFound for a missing path.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", reconcile.ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", reconcile.ErrFileNotFound, path)
	}
	return nil
}
