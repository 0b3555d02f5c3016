package render

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jurbib/digest/app/digest"
)

// Summary renders one row per labelled section with the number of items it
// holds, including those of its sub-sections.
func Summary(root *digest.Section) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Section", "Items"})

	if root != nil {
		root.Walk(func(path []string, s *digest.Section) {
			if len(path) == 0 {
				return
			}
			label := strings.Repeat("  ", len(path)-1) + digest.ASCII(path[len(path)-1])
			tw.AppendRow(table.Row{label, strconv.Itoa(s.Count())})
		})
		tw.AppendFooter(table.Row{"Total", strconv.Itoa(root.Count())})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}
