package tasks

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sioneuhlig/eventscout/internal/filter"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/normalize"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// SearchRecorder stores searches in history.
type SearchRecorder interface {
	RecordSearch(location, category string) error
}

// FavoriteStore is the subset of the favorites repository used for refreshes.
type FavoriteStore interface {
	List() ([]models.Event, error)
	Replace(events []models.Event) (int, error)
}

// SearchRequest is one discovery query: where, what to ask upstream, and how to filter locally.
type SearchRequest struct {
	Location string
	Options  models.SearchOptions
	Criteria models.FilterCriteria
}

// SearchResult is the normalized, filtered outcome of a search.
type SearchResult struct {
	Location string                `json:"location"`
	City     string                `json:"city"`
	Region   string                `json:"region"`
	Fetched  int                   `json:"fetched"`
	Events   []models.Event        `json:"events"`
	Page     *services.Page        `json:"page,omitempty"`
	Criteria models.FilterCriteria `json:"criteria"`
}

// DiscoveryEngine runs searches end to end: gateway, normalizer, filter and history.
type DiscoveryEngine struct {
	gateway    services.EventGateway
	normalizer *normalize.Normalizer
	history    SearchRecorder
	favorites  FavoriteStore
	logger     *log.Logger
}

// EngineOpts configures [NewDiscoveryEngine]. History and Favorites are optional.
type EngineOpts struct {
	Gateway    services.EventGateway
	Normalizer *normalize.Normalizer
	History    SearchRecorder
	Favorites  FavoriteStore
	Logger     *log.Logger
}

// NewDiscoveryEngine creates a new DiscoveryEngine with the provided dependencies.
func NewDiscoveryEngine(opts EngineOpts) *DiscoveryEngine {
	if opts.Normalizer == nil {
		opts.Normalizer = normalize.New(normalize.Opts{})
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &DiscoveryEngine{
		gateway:    opts.Gateway,
		normalizer: opts.Normalizer,
		history:    opts.History,
		favorites:  opts.Favorites,
		logger:     opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *DiscoveryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Search fetches events near req.Location, normalizes them, applies req.Criteria and records the search.
//
// Upstream failures are returned as-is and never retried. A history write failure is logged, not returned.
func (e *DiscoveryEngine) Search(ctx context.Context, progress chan<- ProgressUpdate, req SearchRequest) (*SearchResult, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%w: event gateway not initialized", shared.ErrServiceUnavailable)
	}

	location := strings.TrimSpace(req.Location)
	e.sendProgress(progress, fetchingEventsUpdate(location))

	upstream, err := e.gateway.SearchEvents(ctx, location, req.Options)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, normalizingUpdate(len(upstream.Events)))
	events := e.normalizer.NormalizeAll(upstream.Events)

	filtered := filter.Apply(events, req.Criteria)
	e.sendProgress(progress, filteringUpdate(len(filtered), len(events)))

	result := &SearchResult{
		Location: location,
		City:     upstream.City,
		Region:   upstream.Region,
		Fetched:  len(events),
		Events:   filtered,
		Page:     upstream.Page,
		Criteria: req.Criteria,
	}

	if e.history != nil {
		category := req.Criteria.Category
		if category == models.FilterAll {
			category = ""
		}
		herr := e.history.RecordSearch(location, category)
		if herr != nil {
			e.logger.Warn("failed to record search", "location", location, "error", herr)
		}
		e.sendProgress(progress, historyUpdate(herr))
	}

	return result, nil
}

// Event fetches and normalizes a single event by id.
func (e *DiscoveryEngine) Event(ctx context.Context, id string) (*models.Event, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%w: event gateway not initialized", shared.ErrServiceUnavailable)
	}

	u, err := e.gateway.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := e.normalizer.Normalize(*u)
	return &ev, nil
}
