package geom

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ParseWKT reads POLYGON or MULTIPOLYGON text and returns the outer rings.
func ParseWKT(s string) ([]orb.Ring, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	feats := featuresFromGeometry("", g)
	if len(feats) == 0 {
		return nil, errors.Errorf("wkt: %s has no polygon", g.GeoJSONType())
	}
	rings := make([]orb.Ring, len(feats))
	for i, f := range feats {
		rings[i] = f.Ring
	}
	return rings, nil
}
