package changes

import (
	"bytes"
	"testing"

	"change-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out := &Outcome{
		RunID:   "0f3c",
		Request: Request{Target: "transport.xlsx"},
		Output:  "transport.xlsx",
		Summary: &reconcile.Summary{
			Fields:     []string{"change id", "priority", "description"},
			Deleted:    []reconcile.KeyRef{{Key: "A", Row: 2}},
			Added:      []reconcile.KeyRef{{Key: "C", Row: 3}},
			Kept:       []reconcile.KeyRef{{Key: "B", Row: 2}},
			Duplicates: []string{"B"},
		},
		Saved:    true,
		Recorded: true,
	}

	var buf bytes.Buffer
	Report(&buf, out)

	assert.Equal(t, "Columns to sync: change id, priority, description\n"+
		"  - 'A' (row 2)\n"+
		"  + 'C' (row 3)\n"+
		"  = B\n"+
		"Duplicate keys in target: B\n"+
		"Summary:\n"+
		"  Kept:    1\n"+
		"  Added:   1\n"+
		"  Deleted: 1\n"+
		"Saved transport.xlsx\n"+
		"(run 0f3c)\n", buf.String())
}

func TestReport_DryRun(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	Report(&buf, &Outcome{
		Request:  Request{DryRun: true},
		Encoding: "latin-1",
		Fallback: true,
		Summary: &reconcile.Summary{
			Added:         []reconcile.KeyRef{{Key: "C"}},
			SkippedSource: 2,
		},
	})

	assert.Contains(t, buf.String(), "  + 'C'\n")
	assert.Contains(t, buf.String(), "(2 rows without a key ignored)")
	assert.Contains(t, buf.String(), "Export decoded as latin-1")
	assert.Contains(t, buf.String(), "Dry run: nothing was written.")
	assert.NotContains(t, buf.String(), "Saved")
}
