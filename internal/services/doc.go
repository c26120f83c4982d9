// Package services implements the HTTP clients for the external APIs behind event discovery.
//
// # Event Gateway
//
// [EventGateway] is the contract the rest of the application searches through. [TicketmasterService]
// implements it against the Ticketmaster Discovery API, either directly (the API key is appended to each
// request) or through the scout proxy (the proxy holds the key).
//
// A search splits the free-text location into a locality and a two-letter region via [SplitLocation] and
// [RegionCode], then issues exactly one request. There is no retry, no backoff and no circuit breaker: a
// non-2xx status, a transport failure, an undecodable body or a fault body all surface as
// [shared.ErrAPIRequest] for the caller to render. An optional token bucket paces calls to the upstream quota.
//
// # Typed Upstream Schema
//
// Responses are decoded once at this boundary into [UpstreamResponse] and [UpstreamEvent]. Optional
// upstream data is modelled with pointers and empty slices, and accessors such as [UpstreamEvent.FirstVenue]
// return nil instead of panicking, so the normalizer can work on well-typed but partially absent input.
//
// # Geocoding
//
// [GoogleGeocoder] resolves addresses and coordinates with the Google Geocoding API using resty.
//
// # Raw Access
//
// [APIService] performs raw requests and returns an [APIResponse] without interpretation. The proxy uses it
// to forward searches upstream and the CLI uses it for debugging.
package services
