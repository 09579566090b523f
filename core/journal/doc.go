// Package journal keeps a history of reconciliation runs in a SQL database.
//
// Each run stores the files involved, the kept/added/deleted counts and one
// entry per key action, so a past run can be audited after the workbook has
// changed again. Recording is best effort from the caller's point of view:
// a sync must never fail because its journal could not be written.
//
// # Usage
//
//	j, err := journal.New(db)
//	run := &journal.Run{Target: target, Source: source}
//	run.Fill(summary)
//	err = j.Record(ctx, run)
//
//	runs, err := j.List(ctx, 20)
//	run, err := j.Get(ctx, "3f2a")
package journal
