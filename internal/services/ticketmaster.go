package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"golang.org/x/time/rate"
)

// TicketmasterService is the [EventGateway] for the Ticketmaster Discovery API.
//
// It talks to upstream directly with an API key, or to a scout proxy that holds the key.
type TicketmasterService struct {
	searchURL      string
	detailURL      string // format string taking the event id
	apiKey         string
	proxied        bool
	httpClient     *http.Client
	limiter        *rate.Limiter
	defaults       models.SearchOptions
	fallbackCity   string
	fallbackRegion string
}

// TicketmasterOpts configures [NewTicketmasterService].
type TicketmasterOpts struct {
	BaseURL        string  // Discovery API root, e.g. https://app.ticketmaster.com/discovery/v2
	ProxyURL       string  // scout proxy root; when set the key is not sent
	APIKey         string  // required for direct access
	RateLimit      float64 // requests per second; 0 disables pacing
	HTTPClient     *http.Client
	Defaults       models.SearchOptions
	FallbackCity   string
	FallbackRegion string
}

// DefaultSearchOptions are applied to empty search fields.
var DefaultSearchOptions = models.SearchOptions{Radius: "25", Unit: "miles", Size: 100, Sort: "date,asc"}

// NewTicketmasterService creates a gateway from opts, filling unset fields with defaults.
func NewTicketmasterService(opts TicketmasterOpts) *TicketmasterService {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://app.ticketmaster.com/discovery/v2"
	}
	if opts.FallbackCity == "" {
		opts.FallbackCity = DefaultCity
	}
	if opts.FallbackRegion == "" {
		opts.FallbackRegion = DefaultRegion
	}

	svc := &TicketmasterService{
		apiKey:         opts.APIKey,
		httpClient:     opts.HTTPClient,
		defaults:       opts.Defaults.WithDefaults(DefaultSearchOptions),
		fallbackCity:   opts.FallbackCity,
		fallbackRegion: opts.FallbackRegion,
	}

	if opts.ProxyURL != "" {
		root := strings.TrimRight(opts.ProxyURL, "/")
		svc.searchURL = root + "/api/events"
		svc.detailURL = root + "/api/events/%s"
		svc.apiKey = ""
		svc.proxied = true
	} else {
		root := strings.TrimRight(opts.BaseURL, "/")
		svc.searchURL = root + "/events.json"
		svc.detailURL = root + "/events/%s.json"
	}

	if opts.RateLimit > 0 {
		svc.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return svc
}

// BuildQuery converts a location and options into Discovery API query parameters.
//
// Empty values are left out.
func (t *TicketmasterService) BuildQuery(location string, opts models.SearchOptions) (url.Values, string, string) {
	opts = opts.WithDefaults(t.defaults)
	city, region := SplitLocation(location, t.fallbackCity, t.fallbackRegion)

	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}

	set("city", city)
	set("stateCode", region)
	set("radius", opts.Radius)
	set("unit", opts.Unit)
	if opts.Size > 0 {
		set("size", strconv.Itoa(opts.Size))
	}
	set("sort", opts.Sort)
	set("classificationName", opts.Classification)
	set("segmentName", opts.Segment)
	set("startDateTime", opts.StartDateTime)
	set("endDateTime", opts.EndDateTime)
	set("keyword", opts.Keyword)

	return q, city, region
}

// SearchEvents performs one search for events near location.
func (t *TicketmasterService) SearchEvents(ctx context.Context, location string, opts models.SearchOptions) (*SearchResult, error) {
	if err := models.Validate(opts); err != nil {
		return nil, err
	}

	q, city, region := t.BuildQuery(location, opts)

	var body UpstreamResponse
	if err := t.fetch(ctx, t.searchURL, q, &body); err != nil {
		return nil, err
	}

	result := &SearchResult{City: city, Region: region, Page: body.Page}
	if body.Embedded != nil {
		result.Events = body.Embedded.Events
	}
	return result, nil
}

// GetEvent fetches one event's details.
func (t *TicketmasterService) GetEvent(ctx context.Context, id string) (*UpstreamEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: event id", shared.ErrMissingArgument)
	}

	var event UpstreamEvent
	if err := t.fetch(ctx, fmt.Sprintf(t.detailURL, url.PathEscape(id)), url.Values{}, &event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, fmt.Errorf("%w: %s", shared.ErrEventNotFound, id)
	}
	return &event, nil
}

// fetch issues a single GET and decodes a JSON body into out.
//
// Non-2xx statuses, transport failures, undecodable bodies and fault bodies are all [shared.ErrAPIRequest].
func (t *TicketmasterService) fetch(ctx context.Context, endpoint string, q url.Values, out any) error {
	if !t.proxied {
		if t.apiKey == "" {
			return fmt.Errorf("%w: ticketmaster api key", shared.ErrMissingCredentials)
		}
		q.Set("apikey", t.apiKey)
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	fullURL := endpoint
	if encoded := q.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	var fault upstreamFault
	_ = json.Unmarshal(data, &fault)
	msg, faulted := fault.message()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if !faulted {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, msg)
	}
	if faulted {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: invalid response body: %v", shared.ErrAPIRequest, err)
	}
	return nil
}
