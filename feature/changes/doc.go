// Package changes runs one sync of a change register workbook against a
// change export.
//
// Service.Sync checks both files, opens the workbook, selects the sheet,
// loads the export, resolves the synced columns and plans the
// reconciliation before anything is mutated. The workbook is then
// reconciled in memory and saved atomically, either over the target or to
// a separate output path. A dry run stops after planning. When a journal
// is configured, every completed run is recorded; journal failures are
// logged and never fail the sync.
package changes
