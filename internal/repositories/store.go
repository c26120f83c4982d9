package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// Slot is one versioned, independently overwritten unit of persisted state.
type Slot struct {
	Key       string
	Version   int
	Payload   []byte
	UpdatedAt time.Time
}

// SlotStore persists slots by key. Every Write replaces the previous slot wholesale.
//
// Read returns [shared.ErrSlotNotFound] for absent keys.
type SlotStore interface {
	Read(key string) (*Slot, error)
	Write(slot Slot) error
	Delete(keys ...string) error
	Keys(prefix string) ([]string, error)
	Close() error
}

// Storage drivers understood by [OpenStore].
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// OpenStore opens the slot store selected by cfg.Driver.
//
// SQLite stores are migrated on open. A Badger path of ":memory:" runs in memory.
func OpenStore(cfg shared.DatabaseConfig, logger *log.Logger) (SlotStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		db, err := shared.NewDatabase(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
		}
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
		}
		return NewSQLiteSlotStore(db), nil
	case DriverBadger:
		return OpenBadgerSlotStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Driver)
	}
}
