// Package normalize converts upstream Discovery API records into [models.Event] values.
//
// Normalization is total: every upstream record yields exactly one event, and absent
// nested data falls back to documented defaults rather than failing.
package normalize

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// segmentCategories is checked in order; the first substring match wins.
var segmentCategories = []struct {
	needle   string
	category models.Category
}{
	{"music", models.CategoryMusic},
	{"sports", models.CategorySports},
	{"arts", models.CategoryArts},
	{"film", models.CategoryArts},
	{"food", models.CategoryFood},
}

// Normalizer maps upstream events to display events.
//
// Distance and attendee counts are filler drawn from the injected source, once per event.
type Normalizer struct {
	mu              sync.Mutex
	rng             *rand.Rand
	now             func() time.Time
	defaultLocation string
	fallbackRegion  string
}

// Opts configures [New].
type Opts struct {
	Source          rand.Source      // nil draws from a time-seeded PCG
	Now             func() time.Time // nil uses time.Now
	DefaultLocation string           // used when the venue has no city
	FallbackRegion  string           // used when the venue has no state code
}

// New creates a normalizer.
func New(opts Opts) *Normalizer {
	if opts.Source == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Source = rand.NewPCG(seed, seed>>1|1)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FallbackRegion == "" {
		opts.FallbackRegion = services.DefaultRegion
	}
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = services.DefaultCity + ", " + opts.FallbackRegion
	}
	return &Normalizer{
		rng:             rand.New(opts.Source),
		now:             opts.Now,
		defaultLocation: opts.DefaultLocation,
		fallbackRegion:  opts.FallbackRegion,
	}
}

// Normalize converts a single upstream record.
func (n *Normalizer) Normalize(u services.UpstreamEvent) models.Event {
	distance, attendees := n.filler()
	e := n.convert(u)
	e.Distance = distance
	e.Attendees = attendees
	return e
}

// NormalizeAll converts records in order.
func (n *Normalizer) NormalizeAll(records []services.UpstreamEvent) []models.Event {
	events := make([]models.Event, 0, len(records))
	for _, u := range records {
		events = append(events, n.Normalize(u))
	}
	return events
}

// Refresh re-normalizes u while keeping the filler fields of a previously stored snapshot.
//
// The stored id wins when the fresh record has none.
func (n *Normalizer) Refresh(u services.UpstreamEvent, previous models.Event) models.Event {
	if strings.TrimSpace(u.ID) == "" {
		u.ID = previous.ID
	}
	e := n.convert(u)
	e.Distance = previous.Distance
	e.Attendees = previous.Attendees
	return e
}

func (n *Normalizer) convert(u services.UpstreamEvent) models.Event {
	id := strings.TrimSpace(u.ID)
	if id == "" {
		id = shared.GenerateID()
	}

	date, clock := u.Start()
	if date == "" {
		date = shared.Today(n.now())
	}

	e := models.Event{
		ID:          id,
		Title:       u.Name,
		Description: Describe(u),
		Category:    InferCategory(u.SegmentName()),
		Date:        date,
		Time:        FormatTime(clock),
		Location:    n.location(u.FirstVenue()),
		Venue:       models.DefaultVenue,
		Price:       FormatPrice(u.FirstPriceRange()),
	}
	if u.URL != nil {
		e.URL = *u.URL
	}

	if v := u.FirstVenue(); v != nil {
		if v.Name != "" {
			e.Venue = v.Name
		}
		if lat, lng, ok := v.Location.Coordinates(); ok {
			e.Latitude, e.Longitude = &lat, &lng
		}
	}
	return e
}

func (n *Normalizer) location(v *services.Venue) string {
	if v == nil || v.City == nil || v.City.Name == "" {
		return n.defaultLocation
	}
	region := n.fallbackRegion
	if v.State != nil && v.State.StateCode != "" {
		region = v.State.StateCode
	}
	return v.City.Name + ", " + region
}

func (n *Normalizer) filler() (distance, attendees int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rng.IntN(100) + 1, n.rng.IntN(500) + 50
}

// InferCategory maps an upstream segment name to a category, defaulting to community.
func InferCategory(segment string) models.Category {
	s := strings.ToLower(segment)
	if s == "" {
		return models.CategoryCommunity
	}
	for _, sc := range segmentCategories {
		if strings.Contains(s, sc.needle) {
			return sc.category
		}
	}
	return models.CategoryCommunity
}

// FormatPrice renders a price range as "$12.50", "$10.00 - $45.00" or "Check website".
//
// A range with only one bound renders that bound alone.
func FormatPrice(p *services.PriceRange) string {
	if p == nil || (p.Min == nil && p.Max == nil) {
		return models.PriceCheckWebsite
	}

	lo, hi := p.Min, p.Max
	if lo == nil {
		lo = hi
	}
	if hi == nil {
		hi = lo
	}
	if *lo == *hi {
		return fmt.Sprintf("$%.2f", *lo)
	}
	return fmt.Sprintf("$%.2f - $%.2f", *lo, *hi)
}

// FormatTime renders an upstream "15:04:05" clock as "3:04 PM".
//
// Empty input yields [models.DefaultTime]; anything unparseable is returned as-is.
func FormatTime(clock string) string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return models.DefaultTime
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return clock
}

// Describe picks info, then pleaseNote, then a generated invitation.
func Describe(u services.UpstreamEvent) string {
	if u.Info != nil && strings.TrimSpace(*u.Info) != "" {
		return *u.Info
	}
	if u.PleaseNote != nil && strings.TrimSpace(*u.PleaseNote) != "" {
		return *u.PleaseNote
	}
	return fmt.Sprintf("Join us for %s. Don't miss this exciting event!", u.Name)
}
