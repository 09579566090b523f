package cmd

import (
	"fmt"
	"strings"

	"change-sync/core/ui"
	"change-sync/core/workbook"

	"github.com/spf13/cobra"
)

// sheetsCmd lists the sheets of a workbook.
var sheetsCmd = &cobra.Command{
	Use:   "sheets <target.xlsx>",
	Short: "List the sheets of a workbook",
	Long: `List the sheets of a workbook in order with their header fields,
marking the sheet sync uses by default.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheets,
}

func init() {
	RootCmd.AddCommand(sheetsCmd)
}

func runSheets(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	wb, err := workbook.Open(args[0])
	if err != nil {
		return err
	}
	defer wb.Close()

	out := cmd.OutOrStdout()
	for _, name := range wb.Sheets() {
		line := name
		if name == cfg.Sync.Sheet {
			line = ui.Path.Sprint(name) + " " + ui.Muted.Sprint("default")
		}

		sheet, err := wb.Sheet(name)
		if err != nil {
			return err
		}
		if fields := headerFields(sheet.Header()); len(fields) > 0 {
			line += ": " + strings.Join(fields, ", ")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

// headerFields drops blank header cells.
func headerFields(header []string) []string {
	var fields []string
	for _, h := range header {
		if h = strings.TrimSpace(h); h != "" {
			fields = append(fields, h)
		}
	}
	return fields
}
