package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRouter implements [Router] on top of [chi.Mux].
//
// Middleware added with [ChiRouter.Use] must be registered before any route, matching chi's own rule.
type ChiRouter struct {
	mux *chi.Mux
}

// NewChiRouter creates an empty [ChiRouter].
func NewChiRouter() *ChiRouter {
	return &ChiRouter{mux: chi.NewRouter()}
}

// Use appends middleware; the first added runs outermost.
func (r *ChiRouter) Use(middleware ...Middleware) {
	for _, mw := range middleware {
		r.mux.Use(mw)
	}
}

// Handle registers handler for a single method and path.
func (r *ChiRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Method(method, path, handler)
}

// Handler mounts h on every route it reports, for all methods.
func (r *ChiRouter) Handler(h Handler) {
	for _, route := range h.Routes() {
		r.mux.Handle(route, h)
	}
}

// Static serves files under dir at the root path.
func (r *ChiRouter) Static(dir string) {
	r.mux.Handle("/*", http.FileServer(http.Dir(dir)))
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *ChiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
