package repositories

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// FavoritesRepository persists favorited event snapshots keyed by event id.
//
// Every mutation overwrites the whole favorites slot. A mutex serialises read-modify-write
// within one process; concurrent processes sharing a store are last-write-wins.
type FavoritesRepository struct {
	mu    sync.Mutex
	codec slotCodec[map[string]models.Event]
}

// NewFavoritesRepository creates a new [FavoritesRepository] over store
func NewFavoritesRepository(store SlotStore, logger *log.Logger) *FavoritesRepository {
	return &FavoritesRepository{
		codec: newSlotCodec[map[string]models.Event](store, SlotFavorites, favoritesVersion, logger, time.Now),
	}
}

func (r *FavoritesRepository) read() (map[string]models.Event, error) {
	favs, _, err := r.codec.load()
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = make(map[string]models.Event)
	}
	return favs, nil
}

// IsFavorite reports whether id is favorited. Storage errors read as not favorited.
func (r *FavoritesRepository) IsFavorite(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return false
	}
	_, ok := favs[id]
	return ok
}

// Toggle adds id with snapshot when absent and removes it when present, returning the new state.
func (r *FavoritesRepository) Toggle(id string, snapshot *models.Event) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return false, err
	}

	if _, ok := favs[id]; ok {
		delete(favs, id)
		if err := r.codec.save(favs); err != nil {
			return true, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	if snapshot == nil {
		return false, fmt.Errorf("%w: snapshot required to favorite %s", shared.ErrMissingArgument, id)
	}
	e := *snapshot
	e.ID = id
	favs[id] = e

	if err := r.codec.save(favs); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// Add stores snapshot as a favorite, replacing an existing entry with the same id.
func (r *FavoritesRepository) Add(snapshot models.Event) error {
	if strings.TrimSpace(snapshot.ID) == "" {
		return fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return err
	}
	favs[snapshot.ID] = snapshot
	return r.codec.save(favs)
}

// Remove deletes id, reporting whether it was present.
func (r *FavoritesRepository) Remove(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return false, err
	}
	if _, ok := favs[id]; !ok {
		return false, nil
	}
	delete(favs, id)
	return true, r.codec.save(favs)
}

// Get returns the stored snapshot for id.
func (r *FavoritesRepository) Get(id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return nil, err
	}
	e, ok := favs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a favorite", shared.ErrEventNotFound, id)
	}
	return &e, nil
}

// List returns every favorite ordered by date, then id.
func (r *FavoritesRepository) List() ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return nil, err
	}
	return sortedEvents(favs), nil
}

// Replace overwrites the stored snapshots for the given events, keeping all other favorites.
//
// Events that are no longer favorited are ignored.
func (r *FavoritesRepository) Replace(events []models.Event) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return 0, err
	}

	replaced := 0
	for _, e := range events {
		if _, ok := favs[e.ID]; ok {
			favs[e.ID] = e
			replaced++
		}
	}
	if replaced == 0 {
		return 0, nil
	}
	return replaced, r.codec.save(favs)
}

// Clear removes every favorite.
func (r *FavoritesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.clear()
}

// ImportLegacy merges an exported id→event object into the favorites.
//
// A bare array of ids carries no snapshots and is rejected with [shared.ErrLegacyFormat].
// Entries without an id take their key; invalid entries are skipped. It returns the number imported.
func (r *FavoritesRepository) ImportLegacy(raw []byte) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, fmt.Errorf("%w: empty import", shared.ErrInvalidInput)
	}
	if trimmed[0] == '[' {
		return 0, fmt.Errorf("%w: favorites stored as a list of ids cannot be restored without event details", shared.ErrLegacyFormat)
	}

	var incoming map[string]models.Event
	if err := json.Unmarshal(trimmed, &incoming); err != nil {
		return 0, fmt.Errorf("%w: %v", shared.ErrLegacyFormat, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return 0, err
	}

	imported := 0
	for key, e := range incoming {
		if e.ID == "" {
			e.ID = key
		}
		if e.Category == "" {
			e.Category = models.CategoryCommunity
		}
		if err := models.Validate(e); err != nil {
			continue
		}
		favs[e.ID] = e
		imported++
	}

	if imported > 0 {
		if err := r.codec.save(favs); err != nil {
			return 0, err
		}
	}
	return imported, nil
}

// Export returns the favorites as the id→event object accepted by [FavoritesRepository.ImportLegacy].
func (r *FavoritesRepository) Export() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	favs, err := r.read()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(favs, "", "  ")
}

func sortedEvents(favs map[string]models.Event) []models.Event {
	events := slices.Collect(maps.Values(favs))
	slices.SortFunc(events, func(a, b models.Event) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.ID, b.ID))
	})
	return events
}
