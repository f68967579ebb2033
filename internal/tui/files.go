package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polymap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.files.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// importPath places every polygon of a file on the canvas and fits the view.
func (m *Model) importPath(p string) {
	feats, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.log.Error(err, "import failed", "path", p)
		return
	}
	if len(feats) == 0 {
		m.status = "no polygons in " + filepath.Base(p)
		return
	}
	for _, f := range feats {
		m.canvas.AddShape(f.Ring, f.Name)
	}
	m.canvas.FitAll()
	m.showFiles = false
	m.resize()
	m.status = fmt.Sprintf("imported %d polygons from %s", len(feats), filepath.Base(p))
	m.log.Info("imported", "path", p, "polygons", len(feats))
}
