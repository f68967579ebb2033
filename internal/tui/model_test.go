package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/basemap"
	"polymap/internal/config"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)
	cfg.ExportDir = t.TempDir()
	m := New(cfg, logr.Discard())
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// click presses the left button at a map cell.
func click(m Model, cx, cy int) Model {
	ox, oy, _, _ := m.mapRect()
	return send(m, tea.MouseMsg{X: ox + cx, Y: oy + cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func drawTriangle(t *testing.T, m Model) Model {
	t.Helper()
	m = send(m, key("d"))
	require.Equal(t, modeDraw, m.mode)
	m = click(m, 20, 5)
	m = click(m, 50, 5)
	m = click(m, 50, 25)
	require.Len(t, m.canvas.Draft(), 3)
	m = send(m, key("enter"))
	require.True(t, m.naming)
	return m
}

func TestDrawAndName(t *testing.T) {
	m := newTestModel(t)
	m = drawTriangle(t, m)
	assert.Equal(t, "Polygon 1", m.ti.Value())
	m = send(m, key("enter"))

	assert.False(t, m.naming)
	assert.Equal(t, modeView, m.mode)
	require.Equal(t, 1, m.session.Registry().Len())
	require.Len(t, m.l.Items(), 1)
	it := m.l.Items()[0].(entryItem)
	assert.True(t, strings.HasPrefix(it.Title(), "Polygon 1 — Area: "))
	assert.True(t, strings.HasSuffix(it.Title(), " km²"))
}

func TestDismissedPromptKeepsDefaultName(t *testing.T) {
	m := newTestModel(t)
	m = drawTriangle(t, m)
	m = send(m, key("esc"))
	require.Len(t, m.l.Items(), 1)
	assert.Equal(t, "Polygon 1", m.l.Items()[0].(entryItem).Name)
}

func TestTooFewVerticesStaysInDraw(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("d"))
	m = click(m, 10, 10)
	m = send(m, key("enter"))
	assert.False(t, m.naming)
	assert.Equal(t, modeDraw, m.mode)
	assert.Contains(t, m.status, "need 3")
}

func TestEraseByClick(t *testing.T) {
	m := newTestModel(t)
	m = send(drawTriangle(t, m), key("enter"))
	m = send(m, key("x"))
	m = click(m, 45, 10)
	assert.Zero(t, m.session.Registry().Len())
	assert.Empty(t, m.l.Items())
	assert.Contains(t, m.status, "removed Polygon 1")
}

func TestMoveRelabelsArea(t *testing.T) {
	m := newTestModel(t)
	m = send(drawTriangle(t, m), key("enter"))
	before := m.session.Entries()[0].AreaKm2

	m = send(m, key("e"))
	m = click(m, 50, 25)
	require.NotNil(t, m.picked)
	m = click(m, 50, 35)
	assert.Nil(t, m.picked)
	assert.Greater(t, m.session.Entries()[0].AreaKm2, before)
}

func TestExportSelected(t *testing.T) {
	m := newTestModel(t)
	m = send(drawTriangle(t, m), key("enter"))
	m = send(m, key("w"))
	require.Contains(t, m.status, "saved ")

	path := strings.TrimPrefix(m.status, "saved ")
	assert.Equal(t, "Polygon 1.kml", filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<name>Polygon 1</name>")
}

func TestBasemapAndHomeKeys(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, basemap.SatelliteID, m.canvas.Layer().ID)
	m = send(m, key("2"))
	assert.Equal(t, basemap.StreetsID, m.canvas.Layer().ID)
	m = send(m, key("b"))
	assert.Equal(t, basemap.SatelliteID, m.canvas.Layer().ID)

	m = send(m, key("+"))
	m = send(m, key("+"))
	assert.Equal(t, 6, m.canvas.Zoom())
	m = send(m, key("0"))
	assert.Equal(t, 4, m.canvas.Zoom())
	assert.Equal(t, m.home.Center, m.canvas.Center())
}

func TestPasteWKT(t *testing.T) {
	m := newTestModel(t)
	m = send(m, key("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue("POLYGON((-47.9 -15.8, -47.8 -15.8, -47.8 -15.7, -47.9 -15.8))")
	m = send(m, key("enter"))
	require.True(t, m.naming)
	m = send(m, key("enter"))
	require.Equal(t, 1, m.session.Registry().Len())
	assert.Greater(t, m.canvas.Zoom(), 4)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = send(drawTriangle(t, m), key("enter"))
	v := m.View()
	assert.Contains(t, v, "polymap")
	assert.Contains(t, v, "Polygon 1")
	assert.Contains(t, v, "Satellite")

	m = send(m, key("a"))
	assert.Len(t, m.tbl.Rows(), 1)
}
