package ui

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/xlttj/muxwarden/pkg/forwards"
)

// generateForwardRows converts the forward list to table rows
func generateForwardRows(list []forwards.PortForward) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, f := range list {
		rows = append(rows, table.Row{f.String()})
	}
	return rows
}
