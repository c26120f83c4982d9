package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sioneuhlig/eventscout/internal/services"
)

// ProxyOpts configures [NewProxyRouter].
type ProxyOpts struct {
	Upstream  *services.APIService
	APIKey    string
	StaticDir string // served at / when set
	RateLimit int    // requests per minute per IP
	Logger    *log.Logger
}

// NewProxyRouter assembles the middleware stack and every proxy route.
func NewProxyRouter(opts ProxyOpts) *ChiRouter {
	r := NewChiRouter()
	r.Use(
		RealIP(),
		Recover(),
		Instrument(opts.Logger),
		CORS(),
		RateLimit(opts.RateLimit),
	)

	r.Handle(http.MethodGet, "/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	r.Handle(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handler(NewEventsHandler(opts.Upstream, opts.APIKey, opts.Logger))

	if opts.StaticDir != "" {
		r.Static(opts.StaticDir)
	}
	return r
}
