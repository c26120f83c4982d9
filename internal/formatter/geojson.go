package formatter

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/models"
)

// Default map centre used when a venue has no coordinates.
const (
	DefaultLatitude  = 32.7767
	DefaultLongitude = -96.7970
	markerJitter     = 0.15
)

var categoryColors = map[models.Category]string{
	models.CategoryMusic:     "#9333EA",
	models.CategoryFood:      "#F59E0B",
	models.CategoryArts:      "#EC4899",
	models.CategorySports:    "#10B981",
	models.CategoryCommunity: "#3B82F6",
}

// CategoryColor returns the marker colour for c.
func CategoryColor(c models.Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return "#40E0D0"
}

// FeatureCollection is a GeoJSON document of event markers.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one event marker.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON point in longitude, latitude order.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// MarkerPlacer positions events on the map.
//
// Events without venue coordinates are scattered within ±0.15° of the default centre.
type MarkerPlacer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMarkerPlacer creates a placer; a nil source is seeded from the clock.
func NewMarkerPlacer(src rand.Source) *MarkerPlacer {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>3|1)
	}
	return &MarkerPlacer{rng: rand.New(src)}
}

// Place returns the latitude and longitude for e.
func (p *MarkerPlacer) Place(e models.Event) (lat, lng float64) {
	if e.HasCoordinates() {
		return *e.Latitude, *e.Longitude
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	lat = DefaultLatitude + (p.rng.Float64()-0.5)*2*markerJitter
	lng = DefaultLongitude + (p.rng.Float64()-0.5)*2*markerJitter
	return lat, lng
}

// Markers builds the feature collection for events.
func Markers(events []models.Event, placer *MarkerPlacer) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(events))}
	for _, e := range events {
		lat, lng := placer.Place(e)
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: [2]float64{lng, lat}},
			Properties: map[string]any{
				"id":           e.ID,
				"title":        e.Title,
				"category":     e.Category,
				"date":         e.Date,
				"venue":        e.Venue,
				"price":        e.Price,
				"marker-color": CategoryColor(e.Category),
				"approximate":  !e.HasCoordinates(),
			},
		})
	}
	return fc
}

// ExportToGeoJSON renders events as an indented GeoJSON FeatureCollection.
func ExportToGeoJSON(events []models.Event, placer *MarkerPlacer) ([]byte, error) {
	return json.MarshalIndent(Markers(events, placer), "", "  ")
}
