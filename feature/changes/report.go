package changes

import (
	"fmt"
	"io"
	"strings"

	"change-sync/core/reconcile"
	"change-sync/core/ui"
)

// Report writes a human-readable account of a sync: one line per deleted,
// added or kept key, followed by the summary block.
func Report(w io.Writer, o *Outcome) {
	s := o.Summary

	fmt.Fprintf(w, "%s %s\n", ui.Heading.Sprint("Columns to sync:"), strings.Join(s.Fields, ", "))

	for _, ref := range s.Deleted {
		fmt.Fprintf(w, "  %s %s %s\n", ui.Deleted.Sprint("-"), ui.Key.Sprint(ref.Key), ui.Muted.Sprintf("row %d", ref.Row))
	}
	for _, ref := range s.Added {
		// Dry runs know nothing about the rows inserts would land on
		if ref.Row == 0 {
			fmt.Fprintf(w, "  %s %s\n", ui.Added.Sprint("+"), ui.Key.Sprint(ref.Key))
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n", ui.Added.Sprint("+"), ui.Key.Sprint(ref.Key), ui.Muted.Sprintf("row %d", ref.Row))
	}
	for _, ref := range s.Kept {
		fmt.Fprintf(w, "  %s %s\n", ui.Kept.Sprint("="), ui.Kept.Sprint(ref.Key))
	}

	if len(s.Duplicates) > 0 {
		fmt.Fprintf(w, "%s %s\n", ui.Warning.Sprint("Duplicate keys in target:"), strings.Join(s.Duplicates, ", "))
	}
	if skipped := s.SkippedTarget + s.SkippedSource; skipped > 0 {
		fmt.Fprintf(w, "%s\n", ui.Muted.Sprintf("%d rows without a key ignored", skipped))
	}
	if o.Fallback {
		fmt.Fprintf(w, "%s %s\n", ui.Warning.Sprint("Export decoded as"), o.Encoding)
	}

	writeSummary(w, s)

	switch {
	case o.Request.DryRun:
		fmt.Fprintln(w, ui.Warning.Sprint("Dry run: nothing was written."))
	case o.Saved:
		fmt.Fprintf(w, "%s %s\n", ui.Success.Sprint("Saved"), ui.Path.Sprint(o.Output))
	}
	if o.Recorded {
		fmt.Fprintf(w, "%s\n", ui.Muted.Sprintf("run %s", o.RunID))
	}
}

func writeSummary(w io.Writer, s *reconcile.Summary) {
	kept, added, deleted := s.Counts()
	fmt.Fprintln(w, ui.Heading.Sprint("Summary:"))
	fmt.Fprintf(w, "  Kept:    %d\n", kept)
	fmt.Fprintf(w, "  Added:   %d\n", added)
	fmt.Fprintf(w, "  Deleted: %d\n", deleted)
}
