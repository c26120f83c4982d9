// package services defines clients for the external HTTP APIs used by event discovery
//
// Ticketmaster Discovery (direct or via the scout proxy), Google Geocoding
package services

import (
	"context"

	"github.com/sioneuhlig/eventscout/internal/models"
)

// EventGateway searches an upstream event catalogue.
type EventGateway interface {
	// SearchEvents issues one search for location. It never retries.
	SearchEvents(ctx context.Context, location string, opts models.SearchOptions) (*SearchResult, error)

	// GetEvent fetches a single upstream record by id.
	GetEvent(ctx context.Context, id string) (*UpstreamEvent, error)
}

// Geocoder resolves addresses and coordinates.
type Geocoder interface {
	Forward(ctx context.Context, address string) (*GeocodeResult, error)
	Reverse(ctx context.Context, lat, lng float64) (*GeocodeResult, error)
}

// SearchResult is the typed outcome of [EventGateway.SearchEvents].
type SearchResult struct {
	City   string          // Locality sent upstream
	Region string          // Two-letter region sent upstream
	Events []UpstreamEvent // Records in upstream order
	Page   *Page           // Paging info when upstream supplied it
}
