// Package basemap switches the single active background layer.
package basemap

import "polymap/internal/surface"

const (
	SatelliteID = "satellite"
	StreetsID   = "streets"
)

var (
	Satellite = surface.Layer{
		ID:          SatelliteID,
		Title:       "Satellite",
		URLTemplate: "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Imagery © Esri & USGS",
	}
	Streets = surface.Layer{
		ID:          StreetsID,
		Title:       "Streets",
		URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "© OpenStreetMap",
	}
)

// LayerSetter is the part of the map surface the switcher drives.
type LayerSetter interface {
	SetActiveLayer(l surface.Layer)
}

// Choice is one basemap selector and whether it is the selected one.
type Choice struct {
	Value    string
	Title    string
	Selected bool
}

type Switcher struct {
	surface  LayerSetter
	layers   []surface.Layer
	current  surface.Layer
	selected string
}

// NewSwitcher activates the satellite layer on s.
func NewSwitcher(s LayerSetter) *Switcher {
	sw := &Switcher{surface: s, layers: []surface.Layer{Satellite, Streets}, current: Satellite, selected: SatelliteID}
	s.SetActiveLayer(Satellite)
	return sw
}

func (sw *Switcher) Current() surface.Layer { return sw.current }

// Select activates the layer for a selector value: "streets" picks the
// street map, anything else the satellite imagery. Selecting the active
// layer again leaves the surface alone.
func (sw *Switcher) Select(value string) surface.Layer {
	next := Satellite
	if value == StreetsID {
		next = Streets
	}
	sw.selected = next.ID
	if next.ID == sw.current.ID {
		return sw.current
	}
	sw.current = next
	sw.surface.SetActiveLayer(next)
	return next
}

// Next selects the layer after the current one.
func (sw *Switcher) Next() surface.Layer {
	for i, l := range sw.layers {
		if l.ID == sw.current.ID {
			return sw.Select(sw.layers[(i+1)%len(sw.layers)].ID)
		}
	}
	return sw.Select(SatelliteID)
}

func (sw *Switcher) Choices() []Choice {
	out := make([]Choice, len(sw.layers))
	for i, l := range sw.layers {
		out[i] = Choice{Value: l.ID, Title: l.Title, Selected: l.ID == sw.selected}
	}
	return out
}
