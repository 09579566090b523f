package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"change-sync/core/journal"
	"change-sync/core/ui"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recorded sync runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sync runs",
	Long: `List recorded sync runs, most recent first.

Examples:
  change-sync history --limit 5
  change-sync history show 3f2a9c`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// historyShowCmd prints one run with its per-key entries.
var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run",
	Long:  `Show one recorded run with every deleted, kept and added key. A unique prefix of the run ID is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
	historyCmd.AddCommand(historyShowCmd)
	RootCmd.AddCommand(historyCmd)
}

// withJournal opens the configured journal and hands it to fn.
func withJournal(fn func(j *journal.Journal) error) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("journal is disabled (JOURNAL_ENABLED=false)")
	}

	j, closeJournal, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer closeJournal()

	return fn(j)
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.Journal) error {
		runs, err := j.List(context.Background(), historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}
		writeRuns(out, runs)
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withJournal(func(j *journal.Journal) error {
		run, err := j.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		writeRun(cmd.OutOrStdout(), run)
		return nil
	})
}

func writeRuns(out io.Writer, runs []journal.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Run", "Started", "Target", "Sheet", "Kept", "Added", "Deleted"})
	for _, r := range runs {
		target := r.Target
		if r.DryRun {
			target += " (dry run)"
		}
		t.AppendRow(table.Row{shortID(r.ID), r.StartedAt.Local().Format(time.DateTime), target, r.Sheet, r.Kept, r.Added, r.Deleted})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}

func writeRun(out io.Writer, r *journal.Run) {
	fmt.Fprintf(out, "%s %s\n", ui.Heading.Sprint("Run"), r.ID)
	fmt.Fprintf(out, "  Started:  %s\n", r.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "  Target:   %s [%s]\n", ui.Path.Sprint(r.Target), r.Sheet)
	fmt.Fprintf(out, "  Source:   %s %s\n", ui.Path.Sprint(r.Source), ui.Muted.Sprint(r.Encoding))
	if r.DryRun {
		fmt.Fprintln(out, "  Output:   "+ui.Warning.Sprint("dry run"))
	} else {
		fmt.Fprintf(out, "  Output:   %s\n", ui.Path.Sprint(r.Output))
	}

	for _, e := range r.Entries {
		switch e.Action {
		case "delete":
			fmt.Fprintf(out, "  %s %s %s\n", ui.Deleted.Sprint("-"), ui.Key.Sprint(e.Key), ui.Muted.Sprintf("row %d", e.Row))
		case "insert":
			fmt.Fprintf(out, "  %s %s %s\n", ui.Added.Sprint("+"), ui.Key.Sprint(e.Key), ui.Muted.Sprintf("row %d", e.Row))
		default:
			fmt.Fprintf(out, "  %s %s\n", ui.Kept.Sprint("="), ui.Kept.Sprint(e.Key))
		}
	}
	fmt.Fprintf(out, "Kept %d, added %d, deleted %d\n", r.Kept, r.Added, r.Deleted)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
