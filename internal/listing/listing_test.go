package listing

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/registry"
	"polymap/internal/surface"
)

// planarArea treats coordinates as meters.
type planarArea struct{ calls int }

func (p *planarArea) Area(g orb.Geometry) float64 {
	p.calls++
	r := g.(orb.Ring)
	var s float64
	for i := 0; i+1 < len(r); i++ {
		s += r[i][0]*r[i+1][1] - r[i+1][0]*r[i][1]
	}
	if s < 0 {
		s = -s
	}
	return s / 2
}

func square(side float64) orb.Ring {
	return orb.Ring{{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0}}
}

func TestLabelFormat(t *testing.T) {
	assert.Equal(t, "Farm A — Area: 1.0000 km²", Label("Farm A", 1))
	assert.Equal(t, "x — Area: 2.5000 km²", Label("x", 2.5))
}

func TestRenderSquareKilometer(t *testing.T) {
	reg := registry.New()
	h := new(surface.Shape)
	reg.Add(h, "Farm A", square(1000))

	entries := NewRenderer(&planarArea{}, nil, nil).Render(reg.All())
	require.Len(t, entries, 1)
	assert.Equal(t, "Farm A — Area: 1.0000 km²", entries[0].Label)
	assert.Equal(t, 4, entries[0].Vertices)
	assert.Same(t, h, entries[0].Handle)
}

func TestRenderRecomputesEveryTime(t *testing.T) {
	reg := registry.New()
	h := new(surface.Shape)
	reg.Add(h, "", square(1000))
	area := &planarArea{}
	r := NewRenderer(area, nil, nil)

	first := r.Render(reg.All())
	reg.UpdateGeometry(h, square(2000))
	second := r.Render(reg.All())

	assert.Equal(t, "Polygon 1 — Area: 1.0000 km²", first[0].Label)
	assert.Equal(t, "Polygon 1 — Area: 4.0000 km²", second[0].Label)
	assert.Equal(t, 2, area.calls)

	reg.Remove(h)
	assert.Empty(t, r.Render(reg.All()))
}

func TestEntryActions(t *testing.T) {
	reg := registry.New()
	a, b := new(surface.Shape), new(surface.Shape)
	reg.Add(a, "a", square(10))
	reg.Add(b, "b", square(10))

	var focused []surface.Handle
	var exported []string
	r := NewRenderer(&planarArea{}, func(h surface.Handle) { focused = append(focused, h) },
		func(rec registry.Record) (string, error) {
			exported = append(exported, rec.Name)
			return rec.Name + ".kml", nil
		})

	entries := r.Render(reg.All())
	entries[1].OnFocus()
	where, err := entries[0].OnExport()
	require.NoError(t, err)

	assert.Equal(t, []surface.Handle{b}, focused)
	assert.Equal(t, []string{"a"}, exported)
	assert.Equal(t, "a.kml", where)
}

func TestLabelRoundsHalvesUp(t *testing.T) {
	assert.Equal(t, "a — Area: 1.0313 km²", Label("a", 1.03125))
	assert.Equal(t, "a — Area: 0.5313 km²", Label("a", 0.53125))
	assert.Equal(t, "a — Area: 1.0312 km²", Label("a", 1.0312499))
	assert.Equal(t, "a — Area: 0.0000 km²", Label("a", 0))
}

func TestExportWithoutExporter(t *testing.T) {
	reg := registry.New()
	reg.Add(new(surface.Shape), "a", square(10))

	entries := NewRenderer(&planarArea{}, nil, nil).Render(reg.All())
	_, err := entries[0].OnExport()
	require.ErrorIs(t, err, ErrNoExporter)
}
