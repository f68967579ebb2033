// Package surface is the map surface polygons are drawn on: the contract the
// rest of polymap talks to, and Canvas, its terminal implementation.
package surface

import "github.com/paulmach/orb"

// Layer is a basemap tile layer. Tiles are not fetched in the terminal; the
// layer selects the background style and the attribution line.
type Layer struct {
	ID          string
	Title       string
	URLTemplate string
	Attribution string
}

// Shape is a drawable polygon owned by the surface.
type Shape struct {
	ring  orb.Ring
	label string
}

// Handle is an opaque reference to a Shape. Handles compare by identity.
type Handle = *Shape

// Label is the optional name given when the shape was drawn or imported.
// Empty when none was supplied.
func (s *Shape) Label() string {
	if s == nil {
		return ""
	}
	return s.label
}

// Surface is what the session needs from a map.
type Surface interface {
	OnPolygonCreated(fn func(Handle))
	OnPolygonEdited(fn func(Handle))
	OnPolygonRemoved(fn func(Handle))

	Geometry(h Handle) orb.Ring
	Focus(h Handle)
	ResetView(center orb.Point, zoom int)
	SetActiveLayer(l Layer)
}

func cloneRing(r orb.Ring) orb.Ring {
	if r == nil {
		return nil
	}
	out := make(orb.Ring, len(r))
	copy(out, r)
	return out
}

// closeRing returns a copy of r whose last point equals the first.
func closeRing(r orb.Ring) orb.Ring {
	out := cloneRing(r)
	if len(out) > 0 && !out.Closed() {
		out = append(out, out[0])
	}
	return out
}
