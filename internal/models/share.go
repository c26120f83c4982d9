package models

import "time"

// SharedBy is the attribution written into every shared list.
const SharedBy = "Local Event Discovery User"

// SharedEvent is the trimmed event form carried in a share.
type SharedEvent struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Category Category `json:"category"`
}

// SharedList is a published snapshot of events.
type SharedList struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Events   []SharedEvent `json:"events"`
	SharedBy string        `json:"sharedBy"`
	SharedOn time.Time     `json:"sharedOn"`
}

// NewSharedList trims events down to their shareable fields.
func NewSharedList(id, message string, events []Event, now time.Time) *SharedList {
	list := &SharedList{
		ID:       id,
		Message:  message,
		Events:   make([]SharedEvent, 0, len(events)),
		SharedBy: SharedBy,
		SharedOn: now,
	}
	for _, e := range events {
		list.Events = append(list.Events, SharedEvent{ID: e.ID, Title: e.Title, Date: e.Date, Category: e.Category})
	}
	return list
}
