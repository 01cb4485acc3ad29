package reporting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/joshsz/specreport/types"
)

// ConsoleSummary holds everything the end-of-run console table needs.
type ConsoleSummary struct {
	RunID          string
	Summary        types.RunSummary
	FailedExamples []string
}

// Write renders the summary table to w, colored by overall status, followed
// by the list of failed example names.
func (cs ConsoleSummary) Write(w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Test Report (%s)", cs.RunID))

	t.AppendHeader(table.Row{"Outcome", "Count"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Count", Align: text.AlignRight},
	})

	passed := cs.Summary.ExampleCount - cs.Summary.FailureCount - cs.Summary.PendingCount
	if passed < 0 {
		passed = 0
	}
	t.AppendRow(table.Row{"Passed", passed})
	t.AppendRow(table.Row{"Failed", cs.Summary.FailureCount})
	t.AppendRow(table.Row{"Pending", cs.Summary.PendingCount})

	if cs.Summary.HasFailures() {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	} else if cs.Summary.PendingCount > 0 {
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL (%s)", formatDuration(cs.Summary.Duration)),
		cs.Summary.ExampleCount,
	})
	t.Render()

	if len(cs.FailedExamples) > 0 {
		if _, err := fmt.Fprintf(w, "\nFailed examples:\n"); err != nil {
			return err
		}
		for _, name := range cs.FailedExamples {
			if _, err := fmt.Fprintf(w, "  - %s\n", name); err != nil {
				return err
			}
		}
	}
	return nil
}
