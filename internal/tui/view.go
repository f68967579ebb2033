package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)
	_, _, mapWidth, mapHeight := m.mapRect()

	// Header
	header := titleStyle.Render(" polymap ─ terminal polygon annotation ")
	tool := dimStyle.Render(fmt.Sprintf(" [%s]  zoom %d ", m.mode, m.canvas.Zoom()))
	header = lipgloss.JoinHorizontal(lipgloss.Top, header,
		lipgloss.PlaceHorizontal(max(0, contentWidth-lipgloss.Width(header)), lipgloss.Right, tool))

	// Map viewport
	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	case m.naming:
		prompt := boxStyle.Render(titleStyle.Render("Polygon name") + "\n" + m.ti.View() + "\n" +
			dimStyle.Render("Enter to save, Esc for default"))
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, prompt)
	default:
		mapView = m.renderMap(mapWidth, mapHeight)
	}

	// Body row
	body := mapView
	if m.sidebarVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(mapHeight), " ", mapView)
	}

	// Footer / help
	status := dimStyle.Render(" " + m.status + " ")
	right := m.canvas.Layer().Attribution
	if m.hoverHasGeo {
		right = fmt.Sprintf("lon=%.5f lat=%.5f  %s", m.hoverLon, m.hoverLat, right)
	}
	right = dimStyle.Render(right + " ")
	spacer := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(right))
	statusLine := status + strings.Repeat(" ", spacer) + right
	footer := lipgloss.JoinVertical(lipgloss.Left, statusLine, m.renderHelp())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderSidebar stacks the polygon list (or file explorer) over the basemap
// selector.
func (m Model) renderSidebar(height int) string {
	var top string
	if m.showFiles {
		top = m.files.View()
	} else {
		top = m.l.View()
	}
	var sel []string
	for _, c := range m.switcher.Choices() {
		if c.Selected {
			sel = append(sel, selectedStyle.Render("● "+c.Title))
		} else {
			sel = append(sel, dimStyle.Render("○ "+c.Title))
		}
	}
	selector := boxStyle.Width(sidebarWidth - 2).Render(titleStyle.Render("Basemap") + "\n" + strings.Join(sel, "  "))
	topH := max(1, height-lipgloss.Height(selector))
	top = lipgloss.NewStyle().Width(sidebarWidth).Height(topH).MaxHeight(topH).Render(top)
	return lipgloss.JoinVertical(lipgloss.Left, top, selector)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"←→ pan",
		"+/- zoom",
		"d draw",
		"e edit",
		"g move",
		"x erase",
		"Tab list",
		"f focus",
		"w kml",
		"b basemap",
		"0 home",
		"o open",
		"p paste",
		"a table",
		"h help",
		"q quit",
	}
	return dimStyle.Render(" " + strings.Join(keys, "  "))
}
