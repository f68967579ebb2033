package geom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/twpayne/go-kml/v3"
)

// KMLOptions names the feature properties used for placemark name and description.
type KMLOptions struct {
	NameField        string
	DescriptionField string
}

// KMLEncoder turns a feature collection into a KML document.
type KMLEncoder interface {
	Encode(fc *geojson.FeatureCollection, opts KMLOptions) ([]byte, error)
}

// KML is the go-kml backed encoder.
type KML struct{}

func (KML) Encode(fc *geojson.FeatureCollection, opts KMLOptions) ([]byte, error) {
	var placemarks []kml.Element
	for _, f := range fc.Features {
		var children []kml.Element
		if v := propString(f.Properties, opts.NameField); v != "" {
			children = append(children, kml.Name(v))
		}
		if v := propString(f.Properties, opts.DescriptionField); v != "" {
			children = append(children, kml.Description(v))
		}
		if g := kmlGeometry(f.Geometry); g != nil {
			children = append(children, g)
		}
		placemarks = append(placemarks, kml.Placemark(children...))
	}
	var buf bytes.Buffer
	if err := kml.KML(kml.Document(placemarks...)).WriteIndent(&buf, "", "  "); err != nil {
		return nil, errors.Wrap(err, "encode kml")
	}
	return buf.Bytes(), nil
}

func propString(p geojson.Properties, key string) string {
	if key == "" || p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func kmlCoords(ls []orb.Point) kml.Element {
	coords := make([]kml.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
	}
	return kml.Coordinates(coords...)
}

func kmlPolygon(p orb.Polygon) kml.Element {
	if len(p) == 0 {
		return nil
	}
	children := []kml.Element{kml.OuterBoundaryIs(kml.LinearRing(kmlCoords(p[0])))}
	for _, hole := range p[1:] {
		children = append(children, kml.InnerBoundaryIs(kml.LinearRing(kmlCoords(hole))))
	}
	return kml.Polygon(children...)
}

func kmlGeometry(g orb.Geometry) kml.Element {
	switch g := g.(type) {
	case orb.Point:
		return kml.Point(kmlCoords([]orb.Point{g}))
	case orb.LineString:
		return kml.LineString(kmlCoords(g))
	case orb.Ring:
		return kmlPolygon(orb.Polygon{g})
	case orb.Polygon:
		return kmlPolygon(g)
	case orb.MultiPolygon:
		var polys []kml.Element
		for _, p := range g {
			if e := kmlPolygon(p); e != nil {
				polys = append(polys, e)
			}
		}
		return kml.MultiGeometry(polys...)
	}
	return nil
}

// LoadKML reads the polygons of every Placemark in a KML file, at any
// Document/Folder depth. Only outer boundaries are kept.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open kml")
	}
	defer f.Close()
	return readKML(f)
}

type kmlPolygonXML struct {
	Outer string `xml:"outerBoundaryIs>LinearRing>coordinates"`
}

type kmlPlacemarkXML struct {
	Name     string          `xml:"name"`
	Polygons []kmlPolygonXML `xml:"Polygon"`
	Multi    []kmlPolygonXML `xml:"MultiGeometry>Polygon"`
}

func readKML(r io.Reader) ([]Feature, error) {
	dec := xml.NewDecoder(r)
	var out []Feature
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "parse kml")
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemarkXML
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, errors.Wrap(err, "parse kml placemark")
		}
		for _, p := range append(pm.Polygons, pm.Multi...) {
			if ring := parseKMLCoordinates(p.Outer); len(ring) >= 3 {
				out = append(out, Feature{Name: strings.TrimSpace(pm.Name), Ring: ring})
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no polygons found")
	}
	return out, nil
}

func parseKMLCoordinates(s string) orb.Ring {
	var ring orb.Ring
	// tuples are whitespace separated
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		ring = append(ring, orb.Point{lon, lat})
	}
	return ring
}
