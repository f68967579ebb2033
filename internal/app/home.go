package app

import (
	"github.com/paulmach/orb"

	"polymap/internal/surface"
)

// Home resets the map to a fixed view.
type Home struct {
	Center orb.Point
	Zoom   int

	surface surface.Surface
}

func NewHome(s surface.Surface, center orb.Point, zoom int) Home {
	return Home{Center: center, Zoom: zoom, surface: s}
}

func (h Home) Activate() {
	h.surface.ResetView(h.Center, h.Zoom)
}
