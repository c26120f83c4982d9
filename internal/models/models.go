package models

import (
	"fmt"
	"strings"
)

// Category is the coarse event classification.
type Category string

const (
	CategoryMusic     Category = "music"
	CategoryFood      Category = "food"
	CategoryArts      Category = "arts"
	CategorySports    Category = "sports"
	CategoryCommunity Category = "community"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMusic, CategoryFood, CategoryArts, CategorySports, CategoryCommunity}

// Valid reports whether c is one of [Categories].
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Defaults applied during normalization.
const (
	PriceCheckWebsite = "Check website"
	PriceFree         = "Free"
	DefaultTime       = "7:00 PM"
	DefaultVenue      = "TBA"
)

// Event is the normalized representation of one upstream event.
//
// Distance and Attendees are display filler drawn once when the event is normalized.
// They are not measured and must not be presented as real metrics.
type Event struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category" validate:"required,oneof=music food arts sports community"`
	Date        string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Venue       string   `json:"venue"`
	Price       string   `json:"price"`
	URL         string   `json:"url,omitempty" validate:"omitempty,url"`
	Distance    int      `json:"distance" validate:"gte=0"`
	Attendees   int      `json:"attendees" validate:"gte=0"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the venue position is known.
func (e Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}
