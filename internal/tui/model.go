package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/paulmach/orb"

	"polymap/internal/app"
	"polymap/internal/basemap"
	"polymap/internal/config"
	"polymap/internal/export"
	"polymap/internal/geom"
	"polymap/internal/registry"
	"polymap/internal/surface"
)

type mode int

const (
	modeView mode = iota
	modeDraw
	modeEdit
	modeMove
	modeErase
)

func (md mode) String() string {
	switch md {
	case modeDraw:
		return "draw"
	case modeEdit:
		return "edit"
	case modeMove:
		return "move"
	case modeErase:
		return "erase"
	}
	return "view"
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	log    logr.Logger

	canvas   *surface.Canvas
	session  *app.Session
	switcher *basemap.Switcher
	home     app.Home

	// tools
	mode         mode
	picked       surface.Handle
	pickedVertex int
	pickedAt     [2]int
	dragFrom     orb.Point

	// polygon list
	l       list.Model
	listRev int

	// file explorer
	showFiles bool
	cwd       string
	files     list.Model

	// name prompt
	naming bool
	ti     textinput.Model

	// paste mode
	pasteMode bool
	pasted    bool
	ta        textarea.Model

	// attributes table
	showAttrs bool
	tbl       table.Model

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
}

func New(cfg config.Config, log logr.Logger) Model {
	m := Model{
		helpVisible: true,
		showSidebar: true,
		status:      "polymap ready",
		log:         log.WithName("tui"),
	}
	m.canvas = surface.NewCanvas(cfg.HomeCenter, cfg.HomeZoom, log)
	ex := export.New(geom.KML{}, export.FileSaver{Dir: cfg.ExportDir}, log)
	m.session = app.NewSession(m.canvas, registry.New(), geom.Geodesic{}, ex, log)
	m.switcher = basemap.NewSwitcher(m.canvas)
	m.home = app.NewHome(m.canvas, cfg.HomeCenter, cfg.HomeZoom)

	m.cwd, _ = os.Getwd()
	// polygon list
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Polygons"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.l.SetStatusBarItemName("polygon", "polygons")
	// file explorer
	fd := list.NewDefaultDelegate()
	fd.ShowDescription = false
	m.files = list.New(nil, fd, 0, 0)
	m.files.Title = "Import"
	m.files.SetShowHelp(false)
	m.files.SetShowStatusBar(false)
	m.files.SetFilteringEnabled(true)
	// name prompt
	m.ti = textinput.New()
	m.ti.Prompt = "name: "
	m.ti.CharLimit = 120
	m.ti.Width = 32
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON, MULTIPOLYGON). Press Enter to add; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table, rows follow the polygon list
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.syncList()
	return m
}

// NewWithPath imports a file's polygons at launch.
func NewWithPath(cfg config.Config, log logr.Logger, path string) Model {
	m := New(cfg, log)
	m.importPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
