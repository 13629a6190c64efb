package utils

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderTable writes rows under headers to w.
func RenderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)
	table.Header(headers)

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("error appending to table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering table: %w", err)
	}
	return nil
}
