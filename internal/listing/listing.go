// Package listing projects the registry into the rows of the polygon list.
package listing

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"polymap/internal/geom"
	"polymap/internal/registry"
	"polymap/internal/surface"
)

// Entry is one row of the polygon list.
type Entry struct {
	Handle   surface.Handle
	Name     string
	AreaKm2  float64
	Vertices int
	Label    string

	OnFocus  func()
	OnExport func() (string, error)
}

// Renderer builds entries; area is always computed from the record's current ring.
type Renderer struct {
	area   geom.AreaProvider
	focus  func(surface.Handle)
	export func(registry.Record) (string, error)
}

func NewRenderer(area geom.AreaProvider, focus func(surface.Handle), export func(registry.Record) (string, error)) *Renderer {
	return &Renderer{area: area, focus: focus, export: export}
}

// ErrNoExporter is returned by OnExport when no exporter is wired.
var ErrNoExporter = errors.New("export not configured")

// Label formats a list row.
func Label(name string, areaKm2 float64) string {
	return fmt.Sprintf("%s — Area: %s km²", name, formatKm2(areaKm2))
}

// formatKm2 rounds to 4 decimals. Exact halves go to the larger value.
func formatKm2(v float64) string {
	exact := strconv.FormatFloat(v, 'f', 30, 64)
	if i := strings.IndexByte(exact, '.'); i >= 0 && strings.TrimRight(exact[i+5:], "0") == "5" {
		v = math.Nextafter(v, math.Inf(1))
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func (r *Renderer) Render(records iter.Seq[registry.Record]) []Entry {
	var out []Entry
	for rec := range records {
		km2 := r.area.Area(rec.Geometry) / 1_000_000
		e := Entry{
			Handle:   rec.Handle,
			Name:     rec.Name,
			AreaKm2:  km2,
			Vertices: max(0, len(rec.Geometry)-1),
			Label:    Label(rec.Name, km2),
		}
		h := rec.Handle
		e.OnFocus = func() {
			if r.focus != nil {
				r.focus(h)
			}
		}
		e.OnExport = func() (string, error) {
			if r.export == nil {
				return "", ErrNoExporter
			}
			return r.export(rec)
		}
		out = append(out, e)
	}
	return out
}
