// Package app wires the map surface, the polygon registry and the views
// derived from it.
package app

import (
	"github.com/go-logr/logr"

	"polymap/internal/export"
	"polymap/internal/geom"
	"polymap/internal/listing"
	"polymap/internal/registry"
	"polymap/internal/surface"
)

// Session keeps the registry in step with the surface and re-renders the
// polygon list after every registry change.
type Session struct {
	surface  surface.Surface
	reg      *registry.Registry
	renderer *listing.Renderer
	log      logr.Logger

	entries []listing.Entry
	rev     int
}

func NewSession(s surface.Surface, reg *registry.Registry, area geom.AreaProvider, ex *export.Exporter, log logr.Logger) *Session {
	sess := &Session{surface: s, reg: reg, log: log.WithName("session")}
	var exportFn func(registry.Record) (string, error)
	if ex != nil {
		exportFn = ex.Export
	}
	sess.renderer = listing.NewRenderer(area, s.Focus, exportFn)

	s.OnPolygonCreated(sess.created)
	s.OnPolygonEdited(sess.edited)
	s.OnPolygonRemoved(sess.removed)
	reg.Subscribe(sess.render)
	sess.render()
	return sess
}

func (s *Session) created(h surface.Handle) {
	s.reg.Add(h, h.Label(), s.surface.Geometry(h))
	s.log.Info("polygon added", "count", s.reg.Len())
}

func (s *Session) edited(h surface.Handle) {
	s.reg.UpdateGeometry(h, s.surface.Geometry(h))
}

func (s *Session) removed(h surface.Handle) {
	s.reg.Remove(h)
	s.log.Info("polygon removed", "count", s.reg.Len())
}

func (s *Session) render() {
	s.entries = s.renderer.Render(s.reg.All())
	s.rev++
	s.log.V(2).Info("list rendered", "entries", len(s.entries), "rev", s.rev)
}

func (s *Session) Registry() *registry.Registry { return s.reg }

// Entries is the last rendered list.
func (s *Session) Entries() []listing.Entry { return s.entries }

// Revision increases each time the list is rendered.
func (s *Session) Revision() int { return s.rev }

// Entry returns the rendered row for h.
func (s *Session) Entry(h surface.Handle) (listing.Entry, bool) {
	for _, e := range s.entries {
		if e.Handle == h {
			return e, true
		}
	}
	return listing.Entry{}, false
}
