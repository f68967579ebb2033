package geom

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// LoadGeoJSON reads polygons from a GeoJSON file: a FeatureCollection, a
// single Feature or a bare geometry. Feature names come from properties.name.
func LoadGeoJSON(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read geojson")
	}
	return parseGeoJSON(data)
}

func parseGeoJSON(data []byte) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrap(err, "parse geojson")
	}
	var out []Feature
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "parse feature collection")
		}
		for _, f := range fc.Features {
			out = append(out, featuresFromGeometry(f.Properties.MustString("name", ""), f.Geometry)...)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "parse feature")
		}
		out = featuresFromGeometry(f.Properties.MustString("name", ""), f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(err, "parse geometry")
		}
		out = featuresFromGeometry("", g.Geometry())
	}
	if len(out) == 0 {
		return nil, errors.New("no polygons found")
	}
	return out, nil
}
