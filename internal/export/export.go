// Package export writes single polygons out as KML files.
package export

import (
	"github.com/go-logr/logr"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"polymap/internal/geom"
	"polymap/internal/registry"
)

const (
	MimeKML         = "application/vnd.google-earth.kml+xml"
	DefaultBasename = "poligono"
)

// Downloader offers content to the user as a file.
type Downloader interface {
	Download(filename, mimeType string, content []byte) (string, error)
}

type Exporter struct {
	enc geom.KMLEncoder
	dl  Downloader
	log logr.Logger
}

func New(enc geom.KMLEncoder, dl Downloader, log logr.Logger) *Exporter {
	return &Exporter{enc: enc, dl: dl, log: log.WithName("export")}
}

// Filename is the download name for a polygon called name.
func Filename(name string) string {
	if name == "" {
		name = DefaultBasename
	}
	return name + ".kml"
}

// FeatureCollection wraps rec as a one-feature collection whose name and
// description properties both carry the record name.
func FeatureCollection(rec registry.Record) *geojson.FeatureCollection {
	f := geojson.NewFeature(orb.Polygon{rec.Geometry})
	f.Properties["name"] = rec.Name
	f.Properties["description"] = rec.Name
	return geojson.NewFeatureCollection().Append(f)
}

// Export encodes rec and hands it to the downloader. It returns where the
// downloader put it.
func (e *Exporter) Export(rec registry.Record) (string, error) {
	data, err := e.enc.Encode(FeatureCollection(rec), geom.KMLOptions{NameField: "name", DescriptionField: "name"})
	if err != nil {
		return "", errors.Wrapf(err, "export %q", rec.Name)
	}
	where, err := e.dl.Download(Filename(rec.Name), MimeKML, data)
	if err != nil {
		return "", errors.Wrapf(err, "export %q", rec.Name)
	}
	e.log.Info("exported", "name", rec.Name, "path", where, "bytes", len(data))
	return where, nil
}
