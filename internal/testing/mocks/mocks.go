// package mocks holds test doubles for the service interfaces and upstream fixtures
package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/services"
)

// MockGateway is a test double for [services.EventGateway].
//
// SearchFn and GetFn override the canned Result/Events when set.
type MockGateway struct {
	mu       sync.Mutex
	Result   *services.SearchResult
	Events   map[string]*services.UpstreamEvent
	Err      error
	SearchFn func(ctx context.Context, location string, opts models.SearchOptions) (*services.SearchResult, error)
	GetFn    func(ctx context.Context, id string) (*services.UpstreamEvent, error)
	Searches []string
	Gets     []string
}

func (m *MockGateway) SearchEvents(ctx context.Context, location string, opts models.SearchOptions) (*services.SearchResult, error) {
	m.mu.Lock()
	m.Searches = append(m.Searches, location)
	m.mu.Unlock()

	if m.SearchFn != nil {
		return m.SearchFn(ctx, location, opts)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &services.SearchResult{}, nil
	}
	return m.Result, nil
}

func (m *MockGateway) GetEvent(ctx context.Context, id string) (*services.UpstreamEvent, error) {
	m.mu.Lock()
	m.Gets = append(m.Gets, id)
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if e, ok := m.Events[id]; ok {
		return e, nil
	}
	return nil, errors.New("event not found")
}

// MockGeocoder is a test double for [services.Geocoder].
type MockGeocoder struct {
	Result *services.GeocodeResult
	Err    error
}

func (m *MockGeocoder) Forward(ctx context.Context, address string) (*services.GeocodeResult, error) {
	return m.Result, m.Err
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lng float64) (*services.GeocodeResult, error) {
	return m.Result, m.Err
}

// UpstreamEvent builds a populated upstream record for tests.
func UpstreamEvent(id, name, segment, date string, min, max float64) services.UpstreamEvent {
	info := "About " + name
	link := "https://www.ticketmaster.com/event/" + id
	return services.UpstreamEvent{
		ID:   id,
		Name: name,
		Info: &info,
		URL:  &link,
		Dates: &services.EventDates{
			Start: &services.StartDate{LocalDate: date, LocalTime: "19:30:00"},
		},
		PriceRanges: []services.PriceRange{{Currency: "USD", Min: &min, Max: &max}},
		Classifications: []services.Classification{
			{Segment: &services.NamedRef{Name: segment}},
		},
		Embedded: &services.EventEmbedded{Venues: []services.Venue{{
			Name:     "House of Blues",
			City:     &services.NamedRef{Name: "Dallas"},
			State:    &services.State{StateCode: "TX"},
			Location: &services.GeoPoint{Latitude: "32.7831", Longitude: "-96.8067"},
		}}},
	}
}

// SearchResponseJSON is a minimal Discovery API search body with two events.
const SearchResponseJSON = `{
  "_embedded": {
    "events": [
      {
        "id": "G5vYZ9",
        "name": "Jazz on the Lawn",
        "url": "https://www.ticketmaster.com/event/G5vYZ9",
        "dates": {"start": {"localDate": "2024-05-02", "localTime": "19:30:00"}},
        "priceRanges": [{"type": "standard", "currency": "USD", "min": 20, "max": 20}],
        "classifications": [{"primary": true, "segment": {"id": "KZ", "name": "Music"}}],
        "_embedded": {"venues": [{"name": "Klyde Warren Park", "city": {"name": "Dallas"}, "state": {"stateCode": "TX"}, "location": {"latitude": "32.7894", "longitude": "-96.8016"}}]}
      },
      {
        "id": "H7kQ21",
        "name": "Mavericks vs Spurs"
      }
    ]
  },
  "page": {"size": 2, "totalElements": 2, "totalPages": 1, "number": 0}
}`
