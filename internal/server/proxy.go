package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/sioneuhlig/eventscout/internal/services"
	"github.com/sioneuhlig/eventscout/internal/shared"
)

// ForwardedParams are the only query parameters passed upstream.
var ForwardedParams = []string{
	"city", "stateCode", "radius", "unit", "size", "sort",
	"classificationName", "segmentName", "startDateTime", "endDateTime", "keyword",
}

var errMissingKey = errors.New("ticketmaster api key is not configured")

type upstreamGetter interface {
	GetQuery(ctx context.Context, path string, query url.Values) (*services.APIResponse, error)
}

// EventsHandler forwards event searches and lookups to the Discovery API,
// adding the API key held by the server.
type EventsHandler struct {
	upstream upstreamGetter
	apiKey   string
	logger   *log.Logger
}

// NewEventsHandler creates an [EventsHandler] that calls upstream with apiKey.
func NewEventsHandler(upstream *services.APIService, apiKey string, logger *log.Logger) *EventsHandler {
	return &EventsHandler{upstream: upstream, apiKey: apiKey, logger: logger}
}

// Routes implements [Handler].
func (h *EventsHandler) Routes() []string {
	return []string{"/api/events", "/api/events/{id}"}
}

// ServeHTTP implements [http.Handler].
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodPost:
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method)
		return
	}

	path := "/events.json"
	if id := strings.TrimSpace(chi.URLParam(r, "id")); id != "" {
		path = "/events/" + url.PathEscape(id) + ".json"
	}

	body, err := h.fetch(r.Context(), path, ForwardQuery(r.URL.Query()))
	if err != nil {
		upstreamFailures.Inc()
		h.logger.Error("failed to fetch events", "path", path, "err", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *EventsHandler) fetch(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if h.apiKey == "" {
		return nil, errMissingKey
	}
	q.Set("apikey", h.apiKey)

	resp, err := h.upstream.GetQuery(ctx, path, q)
	if err != nil {
		return nil, err
	}
	if !resp.IsJSON {
		return nil, errors.New("upstream returned a non-JSON body")
	}
	return resp.Body, nil
}

// ForwardQuery copies the non-empty whitelisted parameters from in.
func ForwardQuery(in url.Values) url.Values {
	out := url.Values{}
	for _, key := range ForwardedParams {
		if v := strings.TrimSpace(in.Get(key)); v != "" {
			out.Set(key, v)
		}
	}
	return out
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSONError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
