package cli

import (
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"scene-crowdin/internal/batch"
	"scene-crowdin/internal/textutil"
)

const maxErrorWidth = 60

// renderSummary prints one row per pair and returns the failure count.
func renderSummary(w io.Writer, results []batch.Result) int {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Sides", "Output", "Scenes", "Lines", "Status"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	failed, lines := 0, 0
	for _, r := range results {
		status := "ok"
		output := filepath.Base(r.Output)
		if r.Err != nil {
			failed++
			status = textutil.Truncate(r.Err.Error(), maxErrorWidth)
			output = "-"
		}
		lines += r.Lines
		tw.AppendRow(table.Row{r.Pair.Name, sides(r), output, r.Scenes, r.Lines, status})
	}
	tw.AppendFooter(table.Row{"", "", "", "", lines, ""})
	tw.Render()
	return failed
}

func sides(r batch.Result) string {
	switch {
	case r.Pair.HasSource() && r.Pair.HasReference():
		return "both"
	case r.Pair.HasSource():
		return "source"
	default:
		return "reference"
	}
}
