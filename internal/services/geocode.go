package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// GoogleGeocoder is a [Geocoder] backed by the Google Geocoding API.
type GoogleGeocoder struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

// GeocodeResult is the first match of a geocoding lookup.
type GeocodeResult struct {
	FormattedAddress string             `json:"formatted_address"`
	Lat              float64            `json:"lat"`
	Lng              float64            `json:"lng"`
	Components       []AddressComponent `json:"address_components"`
}

// AddressComponent is one labelled part of an address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress  string             `json:"formatted_address"`
		AddressComponents []AddressComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// NewGoogleGeocoder creates a geocoder. A nil client uses [http.DefaultClient].
func NewGoogleGeocoder(endpoint, apiKey string, httpClient *http.Client) *GoogleGeocoder {
	if endpoint == "" {
		endpoint = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := resty.NewWithClient(httpClient).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &GoogleGeocoder{client: client, endpoint: endpoint, apiKey: apiKey}
}

// Forward resolves a free-text address.
func (g *GoogleGeocoder) Forward(ctx context.Context, address string) (*GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: address", shared.ErrMissingArgument)
	}
	return g.lookup(ctx, map[string]string{"address": address})
}

// Reverse resolves a coordinate pair.
func (g *GoogleGeocoder) Reverse(ctx context.Context, lat, lng float64) (*GeocodeResult, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: coordinates %v,%v", shared.ErrInvalidArgument, lat, lng)
	}
	latlng := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
	return g.lookup(ctx, map[string]string{"latlng": latlng})
}

func (g *GoogleGeocoder) lookup(ctx context.Context, params map[string]string) (*GeocodeResult, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: google api key", shared.ErrMissingCredentials)
	}
	params["key"] = g.apiKey

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		ForceContentType("application/json").
		SetResult(&geocodeResponse{}).
		Get(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode())
	}

	body, ok := resp.Result().(*geocodeResponse)
	if !ok || body == nil {
		return nil, fmt.Errorf("%w: empty geocoding response", shared.ErrAPIRequest)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, fmt.Errorf("%w: no geocoding match", shared.ErrNoResults)
	default:
		msg := body.Status
		if body.ErrorMessage != "" {
			msg += ": " + body.ErrorMessage
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}
	if len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: no geocoding match", shared.ErrNoResults)
	}

	first := body.Results[0]
	return &GeocodeResult{
		FormattedAddress: first.FormattedAddress,
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		Components:       first.AddressComponents,
	}, nil
}

// Component returns the component carrying addressType, or nil.
func (r *GeocodeResult) Component(addressType string) *AddressComponent {
	for i := range r.Components {
		for _, t := range r.Components[i].Types {
			if t == addressType {
				return &r.Components[i]
			}
		}
	}
	return nil
}

// CityRegion renders "Locality, RC" for use as a search location, falling back to the formatted address.
func (r *GeocodeResult) CityRegion() string {
	city := r.Component("locality")
	region := r.Component("administrative_area_level_1")
	if city == nil || region == nil {
		return r.FormattedAddress
	}
	return city.LongName + ", " + region.ShortName
}
