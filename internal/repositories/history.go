package repositories

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// Default caps for the bounded history lists.
const (
	DefaultSearchCap = 20
	DefaultViewedCap = 10
)

// HistoryRepository records searches, views, popularity and user preferences.
//
// Each list lives in its own slot and each operation overwrites only that slot.
type HistoryRepository struct {
	store      SlotStore
	searchCap  int
	viewedCap  int
	now        func() time.Time
	searches   slotCodec[[]models.SearchEntry]
	viewed     slotCodec[[]string]
	prefs      slotCodec[models.FilterCriteria]
	location   slotCodec[string]
	categories slotCodec[[]models.Category]
	popular    slotCodec[map[string]int]
}

// HistoryOpts configures [NewHistoryRepository]. Zero caps use the defaults.
type HistoryOpts struct {
	SearchCap int
	ViewedCap int
	Logger    *log.Logger
	Now       func() time.Time
}

// PopularEvent is an event id with its view count.
type PopularEvent struct {
	ID    string `json:"id"`
	Views int    `json:"views"`
}

// NewHistoryRepository creates a new [HistoryRepository] over store
func NewHistoryRepository(store SlotStore, opts HistoryOpts) *HistoryRepository {
	if opts.SearchCap <= 0 {
		opts.SearchCap = DefaultSearchCap
	}
	if opts.ViewedCap <= 0 {
		opts.ViewedCap = DefaultViewedCap
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &HistoryRepository{
		store:      store,
		searchCap:  opts.SearchCap,
		viewedCap:  opts.ViewedCap,
		now:        opts.Now,
		searches:   newSlotCodec[[]models.SearchEntry](store, SlotSearchHistory, historyVersion, opts.Logger, opts.Now),
		viewed:     newSlotCodec[[]string](store, SlotViewedEvents, historyVersion, opts.Logger, opts.Now),
		prefs:      newSlotCodec[models.FilterCriteria](store, SlotFilterPreferences, preferencesVersion, opts.Logger, opts.Now),
		location:   newSlotCodec[string](store, SlotUserLocation, locationVersion, opts.Logger, opts.Now),
		categories: newSlotCodec[[]models.Category](store, SlotFavoriteCategories, categoriesVersion, opts.Logger, opts.Now),
		popular:    newSlotCodec[map[string]int](store, SlotPopularEvents, popularVersion, opts.Logger, opts.Now),
	}
}

// RecordSearch prepends a search, keeping at most the configured number of entries.
func (r *HistoryRepository) RecordSearch(location, category string) error {
	entries, _, err := r.searches.load()
	if err != nil {
		return err
	}

	entry := models.SearchEntry{Location: location, Category: category, Timestamp: r.now().UTC()}
	entries = append([]models.SearchEntry{entry}, entries...)
	if len(entries) > r.searchCap {
		entries = entries[:r.searchCap]
	}

	if err := r.searches.save(entries); err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// SearchHistory returns recorded searches, newest first.
func (r *HistoryRepository) SearchHistory() ([]models.SearchEntry, error) {
	entries, _, err := r.searches.load()
	if entries == nil {
		entries = []models.SearchEntry{}
	}
	return entries, err
}

// RecordView moves id to the front of the recently viewed list.
func (r *HistoryRepository) RecordView(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	ids, _, err := r.viewed.load()
	if err != nil {
		return err
	}

	ids = slices.DeleteFunc(ids, func(v string) bool { return v == id })
	ids = append([]string{id}, ids...)
	if len(ids) > r.viewedCap {
		ids = ids[:r.viewedCap]
	}

	if err := r.viewed.save(ids); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// RecentlyViewed returns viewed event ids, most recent first.
func (r *HistoryRepository) RecentlyViewed() ([]string, error) {
	ids, _, err := r.viewed.load()
	if ids == nil {
		ids = []string{}
	}
	return ids, err
}

// SavePreferences stores the last used filter criteria.
func (r *HistoryRepository) SavePreferences(c models.FilterCriteria) error {
	if err := models.Validate(c); err != nil {
		return err
	}
	return r.prefs.save(c)
}

// Preferences returns the stored criteria, or zero criteria when none are saved.
func (r *HistoryRepository) Preferences() (models.FilterCriteria, error) {
	c, _, err := r.prefs.load()
	return c, err
}

// SetLocation stores the user's preferred search location.
func (r *HistoryRepository) SetLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("%w: location", shared.ErrMissingArgument)
	}
	return r.location.save(location)
}

// Location returns the stored location or fallback.
func (r *HistoryRepository) Location(fallback string) (string, error) {
	loc, ok, err := r.location.load()
	if err != nil || !ok || loc == "" {
		return fallback, err
	}
	return loc, nil
}

// TrackPopular increments the view counter for id.
func (r *HistoryRepository) TrackPopular(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	counts, _, err := r.popular.load()
	if err != nil {
		return err
	}
	if counts == nil {
		counts = make(map[string]int)
	}
	counts[id]++
	return r.popular.save(counts)
}

// Popular returns up to limit event ids by descending view count, ties broken by id.
func (r *HistoryRepository) Popular(limit int) ([]PopularEvent, error) {
	counts, _, err := r.popular.load()
	if err != nil {
		return nil, err
	}

	out := make([]PopularEvent, 0, len(counts))
	for id, n := range counts {
		out = append(out, PopularEvent{ID: id, Views: n})
	}
	slices.SortFunc(out, func(a, b PopularEvent) int {
		return cmp.Or(cmp.Compare(b.Views, a.Views), cmp.Compare(a.ID, b.ID))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdateFavoriteCategories derives and stores the top three categories among favorites.
//
// Each favorite adds two points to its category; ties keep [models.Categories] order.
func (r *HistoryRepository) UpdateFavoriteCategories(favorites []models.Event) ([]models.Category, error) {
	scores := make(map[models.Category]int)
	for _, e := range favorites {
		scores[e.Category] += 2
	}

	ranked := make([]models.Category, 0, len(scores))
	for _, c := range models.Categories {
		if scores[c] > 0 {
			ranked = append(ranked, c)
		}
	}
	slices.SortStableFunc(ranked, func(a, b models.Category) int { return cmp.Compare(scores[b], scores[a]) })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	if err := r.categories.save(ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

// FavoriteCategories returns the last derived top categories.
func (r *HistoryRepository) FavoriteCategories() ([]models.Category, error) {
	cats, _, err := r.categories.load()
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, err
}

// Clear removes favorites, search history, viewed events and favorite categories.
//
// Preferences, location and popularity counters are kept.
func (r *HistoryRepository) Clear() error {
	return r.store.Delete(SlotFavorites, SlotSearchHistory, SlotViewedEvents, SlotFavoriteCategories)
}
