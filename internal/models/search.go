package models

import "time"

// SearchOptions are the structured parameters of an upstream event search.
//
// Empty fields are omitted from the outbound query.
type SearchOptions struct {
	Radius         string `json:"radius,omitempty" validate:"omitempty,numeric"`
	Unit           string `json:"unit,omitempty" validate:"omitempty,oneof=miles km"`
	Size           int    `json:"size,omitempty" validate:"gte=0,lte=200"`
	Sort           string `json:"sort,omitempty"`
	Classification string `json:"classificationName,omitempty"`
	Segment        string `json:"segmentName,omitempty"`
	StartDateTime  string `json:"startDateTime,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z"`
	EndDateTime    string `json:"endDateTime,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z"`
	Keyword        string `json:"keyword,omitempty"`
}

// WithDefaults fills empty radius, unit, size and sort from d.
func (o SearchOptions) WithDefaults(d SearchOptions) SearchOptions {
	if o.Radius == "" {
		o.Radius = d.Radius
	}
	if o.Unit == "" {
		o.Unit = d.Unit
	}
	if o.Size == 0 {
		o.Size = d.Size
	}
	if o.Sort == "" {
		o.Sort = d.Sort
	}
	return o
}

// SearchEntry is one recorded search, newest entries first in the history log.
type SearchEntry struct {
	Location  string    `json:"location"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"date"`
}
