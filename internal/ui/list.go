package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

var _ list.Item = eventItem{}

// eventItem wraps [models.Event] to implement [list.Item].
type eventItem struct {
	event    models.Event
	favorite bool
	now      time.Time
}

func (i eventItem) FilterValue() string {
	return strings.Join([]string{i.event.Title, i.event.Venue, string(i.event.Category)}, " ")
}

func (i eventItem) Title() string {
	if i.favorite {
		return "★ " + i.event.Title
	}
	return i.event.Title
}

func (i eventItem) Description() string {
	when := shared.RelativeDate(i.event.Date, i.now)
	if i.event.Time != "" {
		when = fmt.Sprintf("%s %s", when, i.event.Time)
	}
	return fmt.Sprintf("%s • %s • %s • %s", i.event.Category, when, i.event.Venue, i.event.Price)
}

func toItems(events []models.Event, isFavorite func(string) bool, now time.Time) []list.Item {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = eventItem{event: e, favorite: isFavorite(e.ID), now: now}
	}
	return items
}
