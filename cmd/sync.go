package cmd

import (
	"context"

	"change-sync/feature/changes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for sync command
	syncSheet     string
	syncOutput    string
	syncDryRun    bool
	syncNoJournal bool
)

// syncCmd reconciles a workbook sheet against a change export.
var syncCmd = &cobra.Command{
	Use:   "sync <target.xlsx> <source.csv>",
	Short: "Sync a change register sheet with a change export",
	Long: `Sync a change register sheet with a change export, keyed by Change ID.

Rows whose Change ID is missing from the export are deleted, IDs only found
in the export are appended, and rows present in both are left untouched.

Examples:
  # Update the register in place
  change-sync sync transport.xlsx export.csv

  # Preview the changes without writing anything
  change-sync sync transport.xlsx export.csv --dry-run

  # Write the result to a new file and use another sheet
  change-sync sync transport.xlsx export.csv --sheet archive --output updated.xlsx`,
	Args: cobra.ExactArgs(2),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncSheet, "sheet", "", "Sheet to reconcile (default from SYNC_SHEET)")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "Write the updated workbook here instead of overwriting the target")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report the changes without writing the workbook")
	syncCmd.Flags().BoolVar(&syncNoJournal, "no-journal", false, "Do not record this run in the journal")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	// A journal that cannot be opened never blocks the sync itself
	var recorder changes.Recorder
	if cfg.Journal.Enabled && !syncNoJournal {
		j, closeJournal, err := openJournal(cfg.Journal)
		if err != nil {
			l.Warn("Journal unavailable, run will not be recorded", zap.Error(err))
		} else {
			defer closeJournal()
			recorder = j
		}
	}

	svc := changes.NewService(l, recorder, cfg.Sync, cfg.Source)
	outcome, err := svc.Sync(ctx, changes.Request{
		Target: args[0],
		Source: args[1],
		Sheet:  syncSheet,
		Output: syncOutput,
		DryRun: syncDryRun,
	})
	if err != nil {
		return err
	}

	changes.Report(cmd.OutOrStdout(), outcome)
	return nil
}
