package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"polymap/internal/basemap"
)

// graticule spacings in degrees, finest first
var graticuleSteps = []float64{0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10, 15, 30}

// project maps points to viewport micro coords.
func (m Model) project(pts []orb.Point) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		mx, my := m.canvas.Project(p)
		out = append(out, [2]int{mx, my})
	}
	return out
}

func (m Model) renderMap(w, h int) string {
	rows := make([][]rune, h)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(" ", w))
	}
	style := satelliteStyle
	if m.canvas.Layer().ID == basemap.StreetsID {
		style = streetsStyle
		m.drawGraticule(rows, w, h)
	}

	// polygons: shaded fill then edges
	br := newBrailleBuf(w, h)
	for _, s := range m.canvas.Shapes() {
		ring := m.project(m.canvas.Vertices(s))
		br.fill(ring)
		br.stroke(ring)
	}
	// draft path, rubber-banded to the pointer
	if m.mode == modeDraw {
		pts := m.project(m.canvas.Draft())
		if m.hovering && len(pts) > 0 {
			pts = append(pts, [2]int{m.hoverCellX*2 + 1, m.hoverCellY*4 + 2})
		}
		br.polyline(pts)
	}
	br.overlay(rows)
	m.drawLabels(rows)

	markers := m.markers(w, h)
	lines := make([]string, h)
	for y, r := range rows {
		lines[y] = renderRow(r, markers[y], style)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles a row, drawing an orange circle at each marker column.
func renderRow(r []rune, marks map[int]bool, style lipgloss.Style) string {
	if len(marks) == 0 {
		return style.Render(string(r))
	}
	mark := style.Foreground(markerFg).Render("◯")
	var sb strings.Builder
	start := 0
	for x := range r {
		if !marks[x] {
			continue
		}
		if x > start {
			sb.WriteString(style.Render(string(r[start:x])))
		}
		sb.WriteString(mark)
		start = x + 1
	}
	if start < len(r) {
		sb.WriteString(style.Render(string(r[start:])))
	}
	return sb.String()
}

// markers returns the highlighted cells by row: draft vertices while drawing,
// the vertex under the pointer while editing, and the picked vertex.
func (m Model) markers(w, h int) map[int]map[int]bool {
	out := map[int]map[int]bool{}
	add := func(p orb.Point) {
		mx, my := m.canvas.Project(p)
		cx, cy := mx/2, my/4
		if mx < 0 || my < 0 || cx >= w || cy >= h {
			return
		}
		if out[cy] == nil {
			out[cy] = map[int]bool{}
		}
		out[cy][cx] = true
	}
	switch m.mode {
	case modeDraw:
		for _, p := range m.canvas.Draft() {
			add(p)
		}
	case modeEdit:
		if m.picked != nil {
			if vs := m.canvas.Vertices(m.picked); m.pickedVertex < len(vs) {
				add(vs[m.pickedVertex])
			}
		} else if m.hovering {
			if s, i, ok := m.canvas.NearestVertex(m.hoverCellX, m.hoverCellY, pickRadius); ok {
				add(m.canvas.Vertices(s)[i])
			}
		}
	}
	return out
}

// drawLabels writes polygon names centered on their bounds.
func (m Model) drawLabels(rows [][]rune) {
	for _, s := range m.canvas.Shapes() {
		e, ok := m.session.Entry(s)
		if !ok || e.Name == "" {
			continue
		}
		mx, my := m.canvas.Project(m.canvas.Geometry(s).Bound().Center())
		cy := my / 4
		if my < 0 || cy >= len(rows) {
			continue
		}
		name := []rune(e.Name)
		x0 := mx/2 - len(name)/2
		for i, r := range name {
			if x := x0 + i; x >= 0 && x < len(rows[cy]) {
				rows[cy][x] = r
			}
		}
	}
}

// drawGraticule draws lon/lat lines at a spacing of at least 12 cells.
func (m Model) drawGraticule(rows [][]rune, w, h int) {
	degPerCell := 720 / (64 * math.Pow(2, float64(m.canvas.Zoom())))
	step := graticuleSteps[len(graticuleSteps)-1]
	for _, s := range graticuleSteps {
		if s >= 12*degPerCell {
			step = s
			break
		}
	}
	nw := m.canvas.CellToLonLat(0, 0)
	se := m.canvas.CellToLonLat(w-1, h-1)
	center := m.canvas.Center()

	var cols []int
	for lon := math.Ceil(nw.Lon()/step) * step; lon <= se.Lon(); lon += step {
		mx, _ := m.canvas.Project(orb.Point{lon, center.Lat()})
		if x := mx / 2; mx >= 0 && x < w {
			cols = append(cols, x)
			for y := range rows {
				rows[y][x] = '┊'
			}
		}
	}
	for lat := math.Ceil(se.Lat()/step) * step; lat <= nw.Lat(); lat += step {
		_, my := m.canvas.Project(orb.Point{center.Lon(), lat})
		y := my / 4
		if my < 0 || y >= h {
			continue
		}
		for x := range rows[y] {
			rows[y][x] = '┈'
		}
		for _, x := range cols {
			rows[y][x] = '┼'
		}
	}
}
