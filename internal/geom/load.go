package geom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Extensions lists the file types Load understands.
var Extensions = []string{".geojson", ".json", ".kml", ".wkt"}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads polygons from a GeoJSON, KML or WKT file picked by extension.
func Load(path string) ([]Feature, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read wkt")
		}
		rings, err := ParseWKT(string(data))
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out := make([]Feature, len(rings))
		for i, r := range rings {
			out[i] = Feature{Name: base, Ring: r}
		}
		return out, nil
	default:
		return nil, errors.Errorf("unsupported file: %s", filepath.Ext(path))
	}
}
