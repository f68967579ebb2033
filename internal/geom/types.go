package geom

import "github.com/paulmach/orb"

// Feature is a named polygon ring read from a file.
type Feature struct {
	Name string
	Ring orb.Ring
}

// featuresFromGeometry takes the outer ring of every polygon in g.
func featuresFromGeometry(name string, g orb.Geometry) []Feature {
	var out []Feature
	switch g := g.(type) {
	case orb.Ring:
		if len(g) >= 3 {
			out = append(out, Feature{Name: name, Ring: g})
		}
	case orb.Polygon:
		if len(g) > 0 && len(g[0]) >= 3 {
			out = append(out, Feature{Name: name, Ring: g[0]})
		}
	case orb.MultiPolygon:
		for _, p := range g {
			out = append(out, featuresFromGeometry(name, p)...)
		}
	case orb.Collection:
		for _, gg := range g {
			out = append(out, featuresFromGeometry(name, gg)...)
		}
	}
	return out
}
