package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchEvents Phase = iota
	NormalizeEvents
	FilterEvents
	RecordHistory
	RefreshFavorites
)

func (p Phase) String() string {
	switch p {
	case FetchEvents:
		return "fetch_events"
	case NormalizeEvents:
		return "normalize_events"
	case FilterEvents:
		return "filter_events"
	case RecordHistory:
		return "record_history"
	case RefreshFavorites:
		return "refresh_favorites"
	default:
		return ""
	}
}

func fetchingEventsUpdate(location string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEvents,
		Step:    1,
		Total:   4,
		Message: fmt.Sprintf("Searching events near %s...", location),
	}
}

func normalizingUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   NormalizeEvents,
		Step:    2,
		Total:   4,
		Message: fmt.Sprintf("Found %d events", count),
	}
}

func filteringUpdate(kept, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FilterEvents,
		Step:    3,
		Total:   4,
		Message: fmt.Sprintf("%d of %d events match filters", kept, total),
	}
}

func historyUpdate(err error) ProgressUpdate {
	msg := "Search saved to history"
	if err != nil {
		msg = fmt.Sprintf("Search not saved to history: %v", err)
	}
	return ProgressUpdate{Phase: RecordHistory, Step: 4, Total: 4, Message: msg}
}

func refreshStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshFavorites,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Refreshing %d favorites...", total),
	}
}

func refreshedUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshFavorites,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, title),
	}
}

func refreshFailedUpdate(step, total int, id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RefreshFavorites,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, id, err),
	}
}
