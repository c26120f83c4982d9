package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

const badgerSlotPrefix = "slot:"

// BadgerSlotStore implements [SlotStore] on an embedded Badger database.
type BadgerSlotStore struct {
	db *badger.DB
}

// badgerEnvelope is the stored value; the payload stays raw so decoding errors surface per slot.
type badgerEnvelope struct {
	Version   int             `json:"version"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// OpenBadgerSlotStore opens (or creates) a Badger directory at path.
func OpenBadgerSlotStore(path string, logger *log.Logger) (*BadgerSlotStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" || path == ":memory:" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open badger: %v", shared.ErrStorage, err)
	}
	return NewBadgerSlotStore(db), nil
}

// NewBadgerSlotStore wraps an open database. The store owns db and closes it.
func NewBadgerSlotStore(db *badger.DB) *BadgerSlotStore {
	return &BadgerSlotStore{db: db}
}

func (s *BadgerSlotStore) Read(key string) (*Slot, error) {
	var env badgerEnvelope

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerSlotPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &env)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read slot %s: %v", shared.ErrStorage, key, err)
	}

	return &Slot{Key: key, Version: env.Version, Payload: []byte(env.Payload), UpdatedAt: env.UpdatedAt}, nil
}

func (s *BadgerSlotStore) Write(slot Slot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now().UTC()
	}
	if !json.Valid(slot.Payload) {
		return fmt.Errorf("%w: slot %s payload is not JSON", shared.ErrStorage, slot.Key)
	}

	data, err := json.Marshal(badgerEnvelope{Version: slot.Version, Payload: slot.Payload, UpdatedAt: slot.UpdatedAt})
	if err != nil {
		return fmt.Errorf("%w: marshal slot %s: %v", shared.ErrStorage, slot.Key, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerSlotPrefix+slot.Key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to write slot %s: %v", shared.ErrStorage, slot.Key, err)
	}
	return nil
}

func (s *BadgerSlotStore) Delete(keys ...string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, k := range keys {
			if err := txn.Delete([]byte(badgerSlotPrefix + k)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete slots: %v", shared.ErrStorage, err)
	}
	return nil
}

// Keys lists slot keys starting with prefix in key order.
func (s *BadgerSlotStore) Keys(prefix string) ([]string, error) {
	keys := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(badgerSlotPrefix + prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(badgerSlotPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list slots: %v", shared.ErrStorage, err)
	}
	return keys, nil
}

func (s *BadgerSlotStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes Badger's internal logging through charm log.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...any)   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...any)    { b.l.Debugf(format, args...) }
func (b badgerLogger) Debugf(format string, args ...any)   { b.l.Debugf(format, args...) }
