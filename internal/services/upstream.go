package services

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// UpstreamResponse is the Discovery API search envelope.
//
// Every nested field is optional; absent data decodes to nil or zero values.
type UpstreamResponse struct {
	Embedded *UpstreamEvents `json:"_embedded,omitempty"`
	Page     *Page           `json:"page,omitempty"`
}

// UpstreamEvents wraps the result list.
type UpstreamEvents struct {
	Events []UpstreamEvent `json:"events"`
}

// Page describes upstream paging.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// UpstreamEvent is one Discovery API event record.
type UpstreamEvent struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Info            *string          `json:"info,omitempty"`
	PleaseNote      *string          `json:"pleaseNote,omitempty"`
	URL             *string          `json:"url,omitempty"`
	Dates           *EventDates      `json:"dates,omitempty"`
	PriceRanges     []PriceRange     `json:"priceRanges,omitempty"`
	Classifications []Classification `json:"classifications,omitempty"`
	Embedded        *EventEmbedded   `json:"_embedded,omitempty"`
}

// EventDates holds the start date block.
type EventDates struct {
	Start *StartDate `json:"start,omitempty"`
}

// StartDate is the local start date and time.
type StartDate struct {
	LocalDate string `json:"localDate,omitempty"`
	LocalTime string `json:"localTime,omitempty"`
}

// PriceRange is a min/max ticket price.
type PriceRange struct {
	Type     string   `json:"type,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
}

// Classification is the upstream taxonomy entry.
type Classification struct {
	Primary bool      `json:"primary,omitempty"`
	Segment *NamedRef `json:"segment,omitempty"`
	Genre   *NamedRef `json:"genre,omitempty"`
}

// NamedRef is an id/name pair used across the upstream schema.
type NamedRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// EventEmbedded carries related venue records.
type EventEmbedded struct {
	Venues []Venue `json:"venues,omitempty"`
}

// Venue is an upstream venue record.
type Venue struct {
	Name     string    `json:"name,omitempty"`
	City     *NamedRef `json:"city,omitempty"`
	State    *State    `json:"state,omitempty"`
	Location *GeoPoint `json:"location,omitempty"`
}

// State is a venue's region.
type State struct {
	Name      string `json:"name,omitempty"`
	StateCode string `json:"stateCode,omitempty"`
}

// GeoPoint is sent upstream as decimal strings.
type GeoPoint struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// Coordinates parses the point, reporting false when either part is missing or malformed.
func (g *GeoPoint) Coordinates() (lat, lng float64, ok bool) {
	if g == nil {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(g.Latitude), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(g.Longitude), 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// FirstVenue returns the first embedded venue or nil.
func (e UpstreamEvent) FirstVenue() *Venue {
	if e.Embedded == nil || len(e.Embedded.Venues) == 0 {
		return nil
	}
	return &e.Embedded.Venues[0]
}

// FirstPriceRange returns the first price range or nil.
func (e UpstreamEvent) FirstPriceRange() *PriceRange {
	if len(e.PriceRanges) == 0 {
		return nil
	}
	return &e.PriceRanges[0]
}

// SegmentName returns the first classification's segment name, or "".
func (e UpstreamEvent) SegmentName() string {
	if len(e.Classifications) == 0 || e.Classifications[0].Segment == nil {
		return ""
	}
	return e.Classifications[0].Segment.Name
}

// Start returns the local start date and time, either of which may be empty.
func (e UpstreamEvent) Start() (date, clock string) {
	if e.Dates == nil || e.Dates.Start == nil {
		return "", ""
	}
	return e.Dates.Start.LocalDate, e.Dates.Start.LocalTime
}

// upstreamFault covers the error bodies returned by the Discovery API and by the scout proxy.
type upstreamFault struct {
	Error   json.RawMessage `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Details string          `json:"details,omitempty"`
	Fault   *struct {
		FaultString string `json:"faultstring"`
	} `json:"fault,omitempty"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors,omitempty"`
}

// message returns a readable description and whether the body described a fault at all.
func (f upstreamFault) message() (string, bool) {
	switch {
	case len(f.Error) > 0 && string(f.Error) != "null":
		if f.Message != "" {
			return f.Message, true
		}
		var s string
		if err := json.Unmarshal(f.Error, &s); err == nil {
			if f.Details != "" {
				return s + ": " + f.Details, true
			}
			return s, true
		}
		return string(f.Error), true
	case f.Fault != nil:
		return f.Fault.FaultString, true
	case len(f.Errors) > 0:
		parts := make([]string, 0, len(f.Errors))
		for _, e := range f.Errors {
			parts = append(parts, strings.TrimSpace(e.Code+" "+e.Detail))
		}
		return strings.Join(parts, "; "), true
	}
	return "", false
}
