package surface

import (
	"math"

	"github.com/go-logr/logr"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// ErrTooFewVertices is returned when a draft cannot form a polygon.
var ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

// Canvas is the terminal map surface. It keeps shapes in draw order, the
// current view and the draft ring of the drawing tool, and dispatches
// created/edited/removed events synchronously to its subscribers.
type Canvas struct {
	shapes []*Shape

	center     orb.Point
	zoom       int
	cols, rows int
	layer      Layer

	drawing bool
	draft   orb.Ring

	created []func(Handle)
	edited  []func(Handle)
	removed []func(Handle)

	log logr.Logger
}

var _ Surface = (*Canvas)(nil)

func NewCanvas(center orb.Point, zoom int, log logr.Logger) *Canvas {
	return &Canvas{
		center: center,
		zoom:   clampZoom(zoom),
		cols:   80,
		rows:   24,
		log:    log.WithName("canvas"),
	}
}

func (c *Canvas) OnPolygonCreated(fn func(Handle)) { c.created = append(c.created, fn) }
func (c *Canvas) OnPolygonEdited(fn func(Handle))  { c.edited = append(c.edited, fn) }
func (c *Canvas) OnPolygonRemoved(fn func(Handle)) { c.removed = append(c.removed, fn) }

func emit(fns []func(Handle), h Handle) {
	for _, fn := range fns {
		fn(h)
	}
}

// Geometry returns a copy of the shape's closed ring.
func (c *Canvas) Geometry(h Handle) orb.Ring {
	if h == nil {
		return nil
	}
	return cloneRing(h.ring)
}

// Focus fits the view to the shape's bounds, never zooming past FocusMaxZoom.
func (c *Canvas) Focus(h Handle) {
	if h == nil || len(h.ring) == 0 {
		return
	}
	c.fitBound(h.ring.Bound(), FocusMaxZoom)
}

// FitAll fits the view to every shape on the canvas.
func (c *Canvas) FitAll() {
	if len(c.shapes) == 0 {
		return
	}
	b := c.shapes[0].ring.Bound()
	for _, s := range c.shapes[1:] {
		b = b.Union(s.ring.Bound())
	}
	c.fitBound(b, FocusMaxZoom)
}

func (c *Canvas) ResetView(center orb.Point, zoom int) {
	c.center = center
	c.zoom = clampZoom(zoom)
	c.log.V(1).Info("view reset", "lon", center.Lon(), "lat", center.Lat(), "zoom", c.zoom)
}

func (c *Canvas) SetActiveLayer(l Layer) {
	c.layer = l
	c.log.V(1).Info("active layer", "id", l.ID)
}

func (c *Canvas) Layer() Layer      { return c.layer }
func (c *Canvas) Center() orb.Point { return c.center }
func (c *Canvas) Zoom() int         { return c.zoom }

// SetViewport records the map area size in terminal cells.
func (c *Canvas) SetViewport(cols, rows int) {
	c.cols = max(1, cols)
	c.rows = max(1, rows)
}

func (c *Canvas) Viewport() (cols, rows int) { return c.cols, c.rows }

// ZoomBy changes the zoom level around the current center.
func (c *Canvas) ZoomBy(delta int) {
	c.zoom = clampZoom(c.zoom + delta)
}

// Pan moves the view by whole cells.
func (c *Canvas) Pan(dx, dy int) {
	x, y := toWorld(c.center, c.zoom)
	c.center = fromWorld(x+float64(dx*2), y+float64(dy*4), c.zoom)
}

// Project maps lon/lat to micro-pixel coordinates of the viewport
// (2x4 per cell, origin top-left).
func (c *Canvas) Project(p orb.Point) (int, int) {
	x, y := toWorld(p, c.zoom)
	cx, cy := toWorld(c.center, c.zoom)
	mx := x - cx + float64(c.cols*2)/2
	my := y - cy + float64(c.rows*4)/2
	return int(math.Floor(mx)), int(math.Floor(my))
}

// CellToLonLat converts a viewport cell to the lon/lat at its center.
func (c *Canvas) CellToLonLat(cellX, cellY int) orb.Point {
	cx, cy := toWorld(c.center, c.zoom)
	x := cx + float64(cellX*2+1) - float64(c.cols*2)/2
	y := cy + float64(cellY*4+2) - float64(c.rows*4)/2
	return fromWorld(x, y, c.zoom)
}

// Shapes returns handles in draw order.
func (c *Canvas) Shapes() []Handle {
	out := make([]Handle, len(c.shapes))
	copy(out, c.shapes)
	return out
}

func (c *Canvas) BeginDraw() {
	c.drawing = true
	c.draft = nil
}

func (c *Canvas) Drawing() bool { return c.drawing }

func (c *Canvas) AddVertex(p orb.Point) {
	if !c.drawing {
		c.BeginDraw()
	}
	c.draft = append(c.draft, p)
}

func (c *Canvas) UndoVertex() bool {
	if len(c.draft) == 0 {
		return false
	}
	c.draft = c.draft[:len(c.draft)-1]
	return true
}

func (c *Canvas) Draft() orb.Ring { return cloneRing(c.draft) }

// SetDraft replaces the draft with r, e.g. a pasted ring awaiting its name.
func (c *Canvas) SetDraft(r orb.Ring) {
	c.drawing = true
	c.draft = cloneRing(r)
	if len(c.draft) > 1 && c.draft.Closed() {
		c.draft = c.draft[:len(c.draft)-1]
	}
}

func (c *Canvas) CancelDraw() {
	c.drawing = false
	c.draft = nil
}

// FinishDraw turns the draft into a shape and emits the created event.
func (c *Canvas) FinishDraw(name string) (Handle, error) {
	if len(distinct(c.draft)) < 3 {
		return nil, ErrTooFewVertices
	}
	h := c.AddShape(c.draft, name)
	c.CancelDraw()
	return h, nil
}

// AddShape places a ring on the canvas and emits the created event.
func (c *Canvas) AddShape(r orb.Ring, name string) Handle {
	h := &Shape{ring: closeRing(r), label: name}
	c.shapes = append(c.shapes, h)
	c.log.V(1).Info("shape created", "label", name, "vertices", len(h.ring)-1)
	emit(c.created, h)
	return h
}

// Vertices returns the editable vertices of h (the ring without its closing point).
func (c *Canvas) Vertices(h Handle) []orb.Point {
	if h == nil || len(h.ring) == 0 {
		return nil
	}
	return append([]orb.Point(nil), h.ring[:len(h.ring)-1]...)
}

// MoveVertex moves vertex i of h to p and emits the edited event.
func (c *Canvas) MoveVertex(h Handle, i int, p orb.Point) bool {
	if !c.has(h) || i < 0 || i >= len(h.ring)-1 {
		return false
	}
	h.ring[i] = p
	if i == 0 {
		h.ring[len(h.ring)-1] = p
	}
	emit(c.edited, h)
	return true
}

// Translate shifts every vertex of h by the given degrees and emits the edited event.
func (c *Canvas) Translate(h Handle, dLon, dLat float64) bool {
	if !c.has(h) {
		return false
	}
	for i := range h.ring {
		h.ring[i] = orb.Point{h.ring[i].Lon() + dLon, h.ring[i].Lat() + dLat}
	}
	emit(c.edited, h)
	return true
}

// Erase removes h from the canvas and emits the removed event.
func (c *Canvas) Erase(h Handle) bool {
	for i, s := range c.shapes {
		if s == h {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			c.log.V(1).Info("shape removed", "label", h.label)
			emit(c.removed, h)
			return true
		}
	}
	return false
}

// HitTest returns the topmost shape containing p.
func (c *Canvas) HitTest(p orb.Point) Handle {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		if planar.RingContains(c.shapes[i].ring, p) {
			return c.shapes[i]
		}
	}
	return nil
}

// NearestVertex finds the vertex closest to a viewport cell within radius cells.
func (c *Canvas) NearestVertex(cellX, cellY, radius int) (Handle, int, bool) {
	hx, hy := cellX*2+1, cellY*4+2
	best := math.Inf(1)
	var bh Handle
	bi := -1
	for _, s := range c.shapes {
		for i, p := range c.Vertices(s) {
			mx, my := c.Project(p)
			dx, dy := float64(mx-hx)/2, float64(my-hy)/4
			d := dx*dx + dy*dy
			if d < best {
				best, bh, bi = d, s, i
			}
		}
	}
	if bh == nil || best > float64(radius*radius) {
		return nil, -1, false
	}
	return bh, bi, true
}

func (c *Canvas) fitBound(b orb.Bound, maxZoom int) {
	wMic, hMic := float64(c.cols*2)*0.9, float64(c.rows*4)*0.9
	z := MinZoom
	for zz := maxZoom; zz >= MinZoom; zz-- {
		x0, y0 := toWorld(b.Min, zz)
		x1, y1 := toWorld(b.Max, zz)
		if math.Abs(x1-x0) <= wMic && math.Abs(y1-y0) <= hMic {
			z = zz
			break
		}
	}
	x0, y0 := toWorld(b.Min, z)
	x1, y1 := toWorld(b.Max, z)
	c.center = fromWorld((x0+x1)/2, (y0+y1)/2, z)
	c.zoom = z
	c.log.V(1).Info("focus", "zoom", z)
}

func (c *Canvas) has(h Handle) bool {
	for _, s := range c.shapes {
		if s == h {
			return true
		}
	}
	return false
}

func distinct(r orb.Ring) []orb.Point {
	var out []orb.Point
	seen := map[orb.Point]bool{}
	for _, p := range r {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
