package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRing(origin orb.Point, side float64) orb.Ring {
	east := geo.PointAtBearingAndDistance(origin, 90, side)
	ne := geo.PointAtBearingAndDistance(east, 0, side)
	north := geo.PointAtBearingAndDistance(origin, 0, side)
	return orb.Ring{origin, east, ne, north, origin}
}

func TestGeodesicAreaSquareKilometer(t *testing.T) {
	ring := squareRing(orb.Point{0, 0}, 1000)
	area := Geodesic{}.Area(ring)
	assert.InEpsilon(t, 1_000_000, area, 0.005)
}

func TestGeodesicAreaOrientationIndependent(t *testing.T) {
	ring := squareRing(orb.Point{-47.9, -15.8}, 500)
	rev := make(orb.Ring, len(ring))
	for i := range ring {
		rev[len(ring)-1-i] = ring[i]
	}
	assert.InDelta(t, Geodesic{}.Area(ring), Geodesic{}.Area(rev), 1e-6)
	assert.Greater(t, Geodesic{}.Area(rev), 0.0)
}

func TestKMLEncodeNameAndDescription(t *testing.T) {
	f := geojson.NewFeature(orb.Polygon{squareRing(orb.Point{10, 10}, 100)})
	f.Properties["name"] = "Farm A"
	f.Properties["description"] = "Farm A"
	fc := geojson.NewFeatureCollection().Append(f)

	out, err := KML{}.Encode(fc, KMLOptions{NameField: "name", DescriptionField: "description"})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<Placemark>")
	assert.Contains(t, s, "<name>Farm A</name>")
	assert.Contains(t, s, "<description>Farm A</description>")
	assert.Contains(t, s, "<outerBoundaryIs>")
	assert.Contains(t, s, "<coordinates>")
}

func TestKMLRoundTripThroughReader(t *testing.T) {
	ring := squareRing(orb.Point{-54.9, -15.2}, 2000)
	f := geojson.NewFeature(ring)
	f.Properties["name"] = "Field 7"
	out, err := KML{}.Encode(geojson.NewFeatureCollection().Append(f), KMLOptions{NameField: "name"})
	require.NoError(t, err)

	feats, err := readKML(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, "Field 7", feats[0].Name)
	require.Len(t, feats[0].Ring, len(ring))
	assert.InDelta(t, ring[2].Lon(), feats[0].Ring[2].Lon(), 1e-9)
	assert.InDelta(t, ring[2].Lat(), feats[0].Ring[2].Lat(), 1e-9)
}

func TestReadKMLNestedFolders(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Folder>
<Placemark><name>a</name><Point><coordinates>1,2</coordinates></Point></Placemark>
<Placemark><name>b</name><MultiGeometry>
  <Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
  <Polygon><outerBoundaryIs><LinearRing><coordinates>5,5,0 6,5,0 6,6,0 5,5,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
</MultiGeometry></Placemark>
</Folder></Document></kml>`
	feats, err := readKML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, feats, 2)
	assert.Equal(t, "b", feats[1].Name)
	assert.Equal(t, orb.Point{6, 6}, feats[1].Ring[2])
}

func TestReadKMLWithoutPolygons(t *testing.T) {
	_, err := readKML(strings.NewReader(`<kml><Placemark><Point><coordinates>1,2</coordinates></Point></Placemark></kml>`))
	require.Error(t, err)
}

func TestParseGeoJSONKinds(t *testing.T) {
	fc := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{"name":"north"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
	  {"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[3,3]}},
	  {"type":"Feature","properties":{"name":"pair"},"geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[2,0],[2,2],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}}
	]}`
	feats, err := parseGeoJSON([]byte(fc))
	require.NoError(t, err)
	require.Len(t, feats, 3)
	assert.Equal(t, "north", feats[0].Name)
	assert.Equal(t, "pair", feats[2].Name)

	feats, err = parseGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, "", feats[0].Name)

	_, err = parseGeoJSON([]byte(`{"coordinates":[]}`))
	require.Error(t, err)
	_, err = parseGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	require.Error(t, err)
}

func TestParseWKT(t *testing.T) {
	rings, err := ParseWKT("POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))")
	require.NoError(t, err)
	require.Len(t, rings, 1)
	assert.Len(t, rings[0], 5)

	rings, err = ParseWKT("MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)),((5 5, 6 5, 6 6, 5 5)))")
	require.NoError(t, err)
	assert.Len(t, rings, 2)

	_, err = ParseWKT("POINT(1 2)")
	require.Error(t, err)
	_, err = ParseWKT("   ")
	require.Error(t, err)
	_, err = ParseWKT("POLYGON((oops")
	require.Error(t, err)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	wktPath := filepath.Join(dir, "plot.wkt")
	require.NoError(t, os.WriteFile(wktPath, []byte("POLYGON((0 0, 1 0, 1 1, 0 0))"), 0o644))
	feats, err := Load(wktPath)
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, "plot", feats[0].Name)

	assert.True(t, Supported("x.GeoJSON"))
	assert.False(t, Supported("x.csv"))
	_, err = Load(filepath.Join(dir, "x.csv"))
	require.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.kml"))
	require.Error(t, err)
}
