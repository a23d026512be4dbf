package export

import (
	"encoding/json"

	"github.com/landslurp/landslurp/internal/pricepaid"
)

// geoJSON is the GeoJSON point rendering shared by both formats.
// Coordinates are ordered [longitude, latitude].
type geoJSON struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func newGeoJSON(p *pricepaid.Point) *geoJSON {
	if p == nil {
		return nil
	}
	return &geoJSON{Type: "Point", Coordinates: [2]float64{p.Long, p.Lat}}
}

func (g *geoJSON) encode() (string, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
