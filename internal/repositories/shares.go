package repositories

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

const shareAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ShareRepository stores shareable event lists under share_<id> slots.
type ShareRepository struct {
	store  SlotStore
	logger *log.Logger
	now    func() time.Time
	newID  func() string
}

// NewShareRepository creates a new [ShareRepository] over store
func NewShareRepository(store SlotStore, logger *log.Logger) *ShareRepository {
	return &ShareRepository{store: store, logger: logger, now: time.Now, newID: newShareID}
}

func (r *ShareRepository) codec(id string) slotCodec[models.SharedList] {
	return newSlotCodec[models.SharedList](r.store, SlotSharePrefix+id, shareVersion, r.logger, r.now)
}

// Create stores a trimmed snapshot of events and returns the new share.
func (r *ShareRepository) Create(message string, events []models.Event) (*models.SharedList, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: nothing to share", shared.ErrInvalidInput)
	}

	list := models.NewSharedList(r.newID(), message, events, r.now().UTC())
	if err := r.codec(list.ID).save(*list); err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}
	return list, nil
}

// Load returns the share stored under id.
func (r *ShareRepository) Load(id string) (*models.SharedList, error) {
	id = strings.TrimPrefix(strings.TrimSpace(id), SlotSharePrefix)
	list, ok, err := r.codec(id).load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: share %s", shared.ErrSlotNotFound, id)
	}
	return &list, nil
}

// List returns the ids of every stored share.
func (r *ShareRepository) List() ([]string, error) {
	keys, err := r.store.Keys(SlotSharePrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = strings.TrimPrefix(k, SlotSharePrefix)
	}
	return ids, nil
}

// newShareID returns seven lower-case base-36 characters.
func newShareID() string {
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		return shared.ShortID()[:7]
	}
	for i, b := range buf {
		buf[i] = shareAlphabet[int(b)%len(shareAlphabet)]
	}
	return string(buf)
}
