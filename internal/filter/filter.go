// Package filter implements the pure filter and sort engine over normalized events.
package filter

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// Apply returns the events matching every criterion, sorted by c.Sort.
//
// The input slice is never modified. Sorting is stable, so ties and an empty sort key keep input order.
func Apply(events []models.Event, c models.FilterCriteria) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, c) {
			out = append(out, e)
		}
	}
	Sort(out, c.Sort)
	return out
}

// Matches reports whether e satisfies every criterion in c.
func Matches(e models.Event, c models.FilterCriteria) bool {
	if !disabled(c.Category) && string(e.Category) != c.Category {
		return false
	}

	switch strings.ToLower(c.Price) {
	case "free":
		if !freeOrUnknown(e.Price) {
			return false
		}
	case "paid":
		if freeOrUnknown(e.Price) {
			return false
		}
	}

	if c.MaxDistance > 0 && e.Distance > c.MaxDistance {
		return false
	}
	return true
}

// Sort orders events in place by key. Unknown or empty keys leave the order untouched.
func Sort(events []models.Event, key string) {
	switch key {
	case models.SortDate:
		slices.SortStableFunc(events, func(a, b models.Event) int { return cmp.Compare(a.Date, b.Date) })
	case models.SortPopularity:
		slices.SortStableFunc(events, func(a, b models.Event) int { return cmp.Compare(b.Attendees, a.Attendees) })
	case models.SortDistance:
		slices.SortStableFunc(events, func(a, b models.Event) int { return cmp.Compare(a.Distance, b.Distance) })
	}
}

// "Check website" counts as free for filtering.
func freeOrUnknown(price string) bool {
	return price == models.PriceFree || price == models.PriceCheckWebsite
}

func disabled(v string) bool {
	return v == "" || v == models.FilterAll
}

// ParseCriteria builds criteria from command-line values.
//
// maxDistance accepts "all", "" or a non-negative integer.
func ParseCriteria(category, price, maxDistance, sort string) (models.FilterCriteria, error) {
	c := models.FilterCriteria{
		Category: strings.ToLower(strings.TrimSpace(category)),
		Price:    strings.ToLower(strings.TrimSpace(price)),
		Sort:     strings.ToLower(strings.TrimSpace(sort)),
	}

	if d := strings.TrimSpace(maxDistance); !disabled(d) {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			return c, fmt.Errorf("%w: max distance %q", shared.ErrInvalidFlag, maxDistance)
		}
		c.MaxDistance = n
	}

	if err := models.Validate(c); err != nil {
		return c, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	return c, nil
}

// Upcoming returns events dated today or later, relative to now.
func Upcoming(events []models.Event, now time.Time) []models.Event {
	return slices.DeleteFunc(slices.Clone(events), func(e models.Event) bool {
		return shared.IsPastDate(e.Date, now)
	})
}

// Past returns events dated before today, relative to now.
func Past(events []models.Event, now time.Time) []models.Event {
	return slices.DeleteFunc(slices.Clone(events), func(e models.Event) bool {
		return !shared.IsPastDate(e.Date, now)
	})
}

// Tab selects the favorites view: "upcoming", "past", or anything else for all.
func Tab(events []models.Event, tab string, now time.Time) []models.Event {
	switch strings.ToLower(tab) {
	case "upcoming":
		return Upcoming(events, now)
	case "past":
		return Past(events, now)
	}
	return slices.Clone(events)
}

// Summary aggregates a set of events.
type Summary struct {
	Total      int                     `json:"total"`
	ByCategory map[models.Category]int `json:"byCategory"`
	Free       int                     `json:"free"`
	Paid       int                     `json:"paid"`
}

// Stats counts events per category and by price class.
//
// Unlike filtering, an empty price counts as free and "Check website" counts as paid.
func Stats(events []models.Event) Summary {
	s := Summary{Total: len(events), ByCategory: make(map[models.Category]int)}
	for _, e := range events {
		s.ByCategory[e.Category]++
		if e.Price == models.PriceFree || e.Price == "" {
			s.Free++
		} else {
			s.Paid++
		}
	}
	return s
}
