package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// AreaProvider computes the area of a geometry in square meters.
type AreaProvider interface {
	Area(g orb.Geometry) float64
}

// Geodesic measures area on the sphere.
type Geodesic struct{}

func (Geodesic) Area(g orb.Geometry) float64 {
	if g == nil {
		return 0
	}
	return geo.Area(g)
}
