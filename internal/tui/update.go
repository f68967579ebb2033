package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/geom"
	"polymap/internal/surface"
)

const (
	sidebarWidth = 40
	headerHeight = 1
	footerHeight = 2
	pickRadius   = 2
)

// mapRect returns the map area origin and size in terminal cells. View and
// mouse handling share it.
func (m Model) mapRect() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	if m.sidebarVisible() {
		return sidebarWidth + 1, headerHeight, max(10, contentWidth-sidebarWidth-1), contentHeight
	}
	return 0, headerHeight, contentWidth, contentHeight
}

func (m Model) sidebarVisible() bool { return m.showSidebar || m.showFiles }

func (m *Model) resize() {
	_, _, w, h := m.mapRect()
	m.canvas.SetViewport(w, h)
	m.l.SetSize(sidebarWidth-2, max(4, h-6))
	m.files.SetSize(sidebarWidth-2, max(4, h-6))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncList()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if first {
			m.canvas.FitAll()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.naming {
		switch msg.String() {
		case "enter":
			m.commitDraft(m.ti.Value())
			return nil
		case "esc":
			// a dismissed prompt still keeps the polygon
			m.commitDraft("")
			return nil
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			m.status = "view mode"
			return nil
		case "enter":
			return m.addPastedWKT()
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return cmd
	}
	// If a list is filtering, send keys to it and ignore global commands
	if m.showFiles && m.files.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return cmd
	}
	if m.showSidebar && !m.showFiles && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return cmd
	}
	if m.showAttrs {
		switch msg.String() {
		case "up", "down", "k", "j", "pgup", "pgdown":
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		m.cancelTool()
	case "d":
		if m.mode == modeDraw {
			m.cancelTool()
			return nil
		}
		m.setMode(modeDraw)
		m.canvas.BeginDraw()
		m.status = "draw: click to add vertices, Enter to finish, Backspace to undo, Esc to cancel"
	case "e":
		m.setMode(modeEdit)
		m.status = "edit: click a vertex, then click its new position"
	case "g":
		m.setMode(modeMove)
		m.status = "move: drag a polygon, or click it and click the destination"
	case "x":
		m.setMode(modeErase)
		m.status = "erase: click a polygon to delete it"
	case "v":
		m.cancelTool()
	case "backspace":
		if m.mode == modeDraw {
			if m.canvas.UndoVertex() {
				m.status = fmt.Sprintf("draft: %d vertices", len(m.canvas.Draft()))
			}
		}
	case "enter":
		switch {
		case m.mode == modeDraw:
			m.promptName()
		case m.showFiles:
			if it, ok := m.files.SelectedItem().(fileItem); ok {
				m.importPath(it.path)
			}
		case m.showSidebar:
			m.focusSelected()
		}
	case "f":
		m.focusSelected()
	case "w":
		m.exportSelected()
	case "tab":
		m.showFiles = false
		m.showSidebar = !m.showSidebar
		m.resize()
	case "o":
		m.showFiles = !m.showFiles
		if m.showFiles {
			m.refreshDir()
		}
		m.resize()
	case "b":
		l := m.switcher.Next()
		m.status = "basemap: " + l.Title
	case "1":
		m.status = "basemap: " + m.switcher.Select("satellite").Title
	case "2":
		m.status = "basemap: " + m.switcher.Select("streets").Title
	case "0", "home":
		m.home.Activate()
		m.status = "home view"
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m.ta.Focus()
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "h":
		m.helpVisible = !m.helpVisible
	case "+", "=":
		m.canvas.ZoomBy(1)
		m.status = fmt.Sprintf("zoom: %d", m.canvas.Zoom())
	case "-", "_":
		m.canvas.ZoomBy(-1)
		m.status = fmt.Sprintf("zoom: %d", m.canvas.Zoom())
	case "left":
		m.canvas.Pan(-4, 0)
	case "right":
		m.canvas.Pan(4, 0)
	case "up", "down", "pgup", "pgdown", "/":
		if m.sidebarVisible() {
			var cmd tea.Cmd
			if m.showFiles {
				m.files, cmd = m.files.Update(msg)
			} else {
				m.l, cmd = m.l.Update(msg)
			}
			return cmd
		}
		switch msg.String() {
		case "up":
			m.canvas.Pan(0, -2)
		case "down":
			m.canvas.Pan(0, 2)
		}
	case "shift+up":
		m.canvas.Pan(0, -2)
	case "shift+down":
		m.canvas.Pan(0, 2)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ox, oy, w, h := m.mapRect()
	cx, cy := msg.X-ox, msg.Y-oy
	inside := cx >= 0 && cx < w && cy >= 0 && cy < h
	m.hovering = inside
	if !inside {
		m.hoverHasGeo = false
		return
	}
	m.hoverCellX, m.hoverCellY = cx, cy
	p := m.canvas.CellToLonLat(cx, cy)
	m.hoverHasGeo = true
	m.hoverLon, m.hoverLat = p.Lon(), p.Lat()

	if m.naming || m.pasteMode || m.showAttrs {
		return
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.canvas.ZoomBy(1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.canvas.ZoomBy(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(cx, cy)
	case msg.Action == tea.MouseActionRelease:
		if m.picked != nil && [2]int{cx, cy} != m.pickedAt {
			m.release(cx, cy)
		}
	}
}

func (m *Model) press(cx, cy int) {
	p := m.canvas.CellToLonLat(cx, cy)
	if m.picked != nil {
		m.release(cx, cy)
		return
	}
	switch m.mode {
	case modeDraw:
		m.canvas.AddVertex(p)
		m.status = fmt.Sprintf("vertex %d  lon=%.5f lat=%.5f", len(m.canvas.Draft()), p.Lon(), p.Lat())
	case modeEdit:
		h, i, ok := m.canvas.NearestVertex(cx, cy, pickRadius)
		if !ok {
			m.status = "no vertex here"
			return
		}
		m.picked, m.pickedVertex, m.pickedAt = h, i, [2]int{cx, cy}
		m.status = fmt.Sprintf("vertex %d of %s picked", i+1, m.nameOf(h))
	case modeMove:
		h := m.canvas.HitTest(p)
		if h == nil {
			m.status = "no polygon here"
			return
		}
		m.picked, m.dragFrom, m.pickedAt = h, p, [2]int{cx, cy}
		m.status = m.nameOf(h) + " picked"
	case modeErase:
		h := m.canvas.HitTest(p)
		if h == nil {
			m.status = "no polygon here"
			return
		}
		name := m.nameOf(h)
		m.canvas.Erase(h)
		m.status = "removed " + name
	default:
		if h := m.canvas.HitTest(p); h != nil {
			m.selectHandle(h)
			if e, ok := m.session.Entry(h); ok {
				m.status = e.Label
			}
		}
	}
}

// release completes an edit or move at the given cell.
func (m *Model) release(cx, cy int) {
	p := m.canvas.CellToLonLat(cx, cy)
	h := m.picked
	m.picked = nil
	switch m.mode {
	case modeEdit:
		m.canvas.MoveVertex(h, m.pickedVertex, p)
	case modeMove:
		m.canvas.Translate(h, p.Lon()-m.dragFrom.Lon(), p.Lat()-m.dragFrom.Lat())
	default:
		return
	}
	if e, ok := m.session.Entry(h); ok {
		m.status = e.Label
	}
}

func (m *Model) setMode(md mode) {
	if m.mode == modeDraw && md != modeDraw {
		m.canvas.CancelDraw()
	}
	m.mode = md
	m.picked = nil
}

func (m *Model) cancelTool() {
	m.pasted = false
	if m.mode != modeView {
		m.status = m.mode.String() + " cancelled"
	}
	m.setMode(modeView)
}

// promptName opens the name prompt prefilled with the next default name.
func (m *Model) promptName() {
	if n := len(m.canvas.Draft()); n < 3 {
		m.status = fmt.Sprintf("draft has %d vertices, need 3", n)
		return
	}
	m.naming = true
	m.ti.SetValue(m.session.Registry().NextName())
	m.ti.CursorEnd()
	m.ti.Focus()
}

func (m *Model) commitDraft(name string) {
	m.naming = false
	m.ti.Blur()
	h, err := m.canvas.FinishDraw(strings.TrimSpace(name))
	if err != nil {
		m.status = "draw error: " + err.Error()
		return
	}
	m.mode = modeView
	if m.pasted {
		m.pasted = false
		m.canvas.Focus(h)
	}
	if e, ok := m.session.Entry(h); ok {
		m.status = "added " + e.Label
	}
	m.selectHandle(h)
}

func (m *Model) addPastedWKT() tea.Cmd {
	w := strings.TrimSpace(m.ta.Value())
	if w == "" {
		m.status = "paste: empty"
		return nil
	}
	rings, err := geom.ParseWKT(w)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return nil
	}
	m.pasteMode = false
	m.ta.Blur()
	if len(rings) == 1 {
		m.setMode(modeDraw)
		m.canvas.SetDraft(rings[0])
		m.pasted = true
		m.promptName()
		return nil
	}
	for _, r := range rings {
		m.canvas.AddShape(r, "")
	}
	m.canvas.FitAll()
	m.status = fmt.Sprintf("added %d polygons from WKT", len(rings))
	return nil
}

func (m *Model) focusSelected() {
	it, ok := m.l.SelectedItem().(entryItem)
	if !ok {
		m.status = "no polygon selected"
		return
	}
	it.OnFocus()
	m.status = "focus: " + it.Name
}

func (m *Model) exportSelected() {
	it, ok := m.l.SelectedItem().(entryItem)
	if !ok {
		m.status = "no polygon selected"
		return
	}
	path, err := it.OnExport()
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	m.status = "saved " + path
}

func (m Model) nameOf(h surface.Handle) string {
	if e, ok := m.session.Entry(h); ok {
		return e.Name
	}
	return "polygon"
}
