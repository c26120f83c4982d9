package repositories

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// Slot keys and their payload versions.
const (
	SlotFavorites          = "favorites"
	SlotSearchHistory      = "search_history"
	SlotViewedEvents       = "viewed_events"
	SlotFilterPreferences  = "filter_preferences"
	SlotUserLocation       = "user_location"
	SlotFavoriteCategories = "favorite_categories"
	SlotPopularEvents      = "popular_events"
	SlotSharePrefix        = "share_"

	favoritesVersion   = 1
	historyVersion     = 1
	preferencesVersion = 1
	locationVersion    = 1
	categoriesVersion  = 1
	popularVersion     = 1
	shareVersion       = 1
)

// slotCodec reads and writes one typed slot.
//
// A slot with an unexpected version or an undecodable payload is reset: it is deleted,
// a warning is logged, and the zero value is returned.
type slotCodec[T any] struct {
	store   SlotStore
	key     string
	version int
	logger  *log.Logger
	now     func() time.Time
}

func newSlotCodec[T any](store SlotStore, key string, version int, logger *log.Logger, now func() time.Time) slotCodec[T] {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if now == nil {
		now = time.Now
	}
	return slotCodec[T]{store: store, key: key, version: version, logger: logger, now: now}
}

// load returns the stored value, or ok=false when the slot is absent or was reset.
func (c slotCodec[T]) load() (value T, ok bool, err error) {
	slot, err := c.store.Read(c.key)
	if errors.Is(err, shared.ErrSlotNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}

	if slot.Version != c.version {
		c.reset(fmt.Errorf("%w: version %d, want %d", shared.ErrCorruptSlot, slot.Version, c.version))
		return value, false, nil
	}
	if err := json.Unmarshal(slot.Payload, &value); err != nil {
		var zero T
		c.reset(fmt.Errorf("%w: %v", shared.ErrCorruptSlot, err))
		return zero, false, nil
	}
	return value, true, nil
}

func (c slotCodec[T]) save(value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", shared.ErrStorage, c.key, err)
	}
	return c.store.Write(Slot{Key: c.key, Version: c.version, Payload: payload, UpdatedAt: c.now().UTC()})
}

func (c slotCodec[T]) clear() error {
	return c.store.Delete(c.key)
}

func (c slotCodec[T]) reset(reason error) {
	c.logger.Warn("resetting stored slot", "slot", c.key, "error", reason)
	if err := c.store.Delete(c.key); err != nil {
		c.logger.Error("failed to reset slot", "slot", c.key, "error", err)
	}
}
