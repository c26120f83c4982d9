// Package server runs the HTTP proxy that keeps the Ticketmaster API key off clients.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [ChiRouter] implements it
// on top of chi; middleware runs in the order it is added, outermost first.
//
// # Proxy
//
// [EventsHandler] serves /api/events and /api/events/{id}. Only [ForwardedParams] reach upstream
// and the server-held key is appended. JSON bodies pass through with status 200; any failure
// answers 500 with {"error":"Failed to fetch events","details":"..."}.
//
// # Middleware
//
// [NewProxyRouter] stacks real-IP extraction, panic recovery, request logging with Prometheus
// metrics, permissive CORS and a per-IP rate limit.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
