package surface

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	// tileMicro is the edge of one zoom-0 tile in braille micro pixels.
	tileMicro = 64

	MinZoom      = 1
	MaxZoom      = 19
	FocusMaxZoom = 16

	maxLat = 85.05112878
)

var mercatorExtent = math.Pi * 6378137.0

func worldSize(zoom int) float64 {
	return tileMicro * math.Exp2(float64(zoom))
}

// toWorld maps lon/lat to Web Mercator world micro-pixel coordinates at zoom.
func toWorld(p orb.Point, zoom int) (float64, float64) {
	lat := math.Max(-maxLat, math.Min(maxLat, p.Lat()))
	m := project.Point(orb.Point{p.Lon(), lat}, project.WGS84.ToMercator)
	s := worldSize(zoom)
	x := (m[0] + mercatorExtent) / (2 * mercatorExtent) * s
	y := (mercatorExtent - m[1]) / (2 * mercatorExtent) * s
	return x, y
}

func fromWorld(x, y float64, zoom int) orb.Point {
	s := worldSize(zoom)
	m := orb.Point{x/s*2*mercatorExtent - mercatorExtent, mercatorExtent - y/s*2*mercatorExtent}
	return project.Point(m, project.Mercator.ToWGS84)
}

func clampZoom(z int) int {
	return max(MinZoom, min(MaxZoom, z))
}
