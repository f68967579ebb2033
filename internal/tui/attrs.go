package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

var attrColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "name", Width: 20},
	{Title: "area km²", Width: 14},
	{Title: "vertices", Width: 8},
	{Title: "center", Width: 22},
}

// refreshAttrs rebuilds the table rows from the polygon list.
func (m *Model) refreshAttrs() {
	entries := m.session.Entries()
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		c := m.canvas.Geometry(e.Handle).Bound().Center()
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			e.Name,
			fmt.Sprintf("%.4f", e.AreaKm2),
			fmt.Sprintf("%d", e.Vertices),
			fmt.Sprintf("%.5f, %.5f", c.Lon(), c.Lat()),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(attrColumns)
	m.tbl.SetRows(rows)
}
