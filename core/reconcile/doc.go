// Package reconcile provides key-based reconciliation between a mutable,
// row-oriented target store and an authoritative source snapshot.
//
// The source decides which keys exist; it never updates records that are
// already in the target. A reconciliation therefore produces a minimal edit
// script of deletions and insertions:
//
//   - keys in the target but not in the source are deleted,
//   - keys in both are kept with their existing target data,
//   - keys in the source but not in the target are appended, carrying only
//     the synced field values.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Fields: ResolveFields matches the configured key, required and optional
// fields against both headers (case-insensitive, trimmed) and fails with a
// SchemaMismatchError before anything is indexed.
//
// 2. Indexing: IndexTarget and IndexSource map normalized keys to rows and
// records. Blank keys are ignored on both sides.
//
// 3. Plan: BuildPlan computes the actions without mutating anything.
//
// 4. Apply: Apply deletes rows from the highest row down, re-indexes the
// store, and appends the inserts at the end.
//
// # Stores
//
// Any type implementing Store can be reconciled. Table is the in-memory
// implementation; core/workbook provides one backed by an xlsx sheet.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileWithPlan(sheet, source, cfg.FieldSpec())
//	if err != nil {
//	    return err
//	}
//	summary, err := reconcile.ApplyPlan(sheet, plan, reconcile.ReconcileOptions{DryRun: dryRun})
//
// For a side-effect-free call, Reconciled clones a Table first:
//
//	after, summary, err := reconcile.Reconciled(before, source, spec)
package reconcile
