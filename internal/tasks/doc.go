// Package tasks orchestrates event discovery with real-time progress reporting.
//
// # Core Operations
//
// [DiscoveryEngine] ties the gateway, normalizer, filter engine and history together:
//
//  1. [DiscoveryEngine.Search] : one upstream search, normalized and filtered
//     - Splits the location and queries the event gateway exactly once
//     - Normalizes every record and applies the filter criteria
//     - Records the search in history (failures are logged, not returned)
//
//  2. [DiscoveryEngine.Event] : a single normalized event by id
//
//  3. [DiscoveryEngine.RefreshFavorites] : re-fetches favorites on a worker pool
//     - Paced by a token bucket, bounded to ten workers
//     - Keeps the stored distance and attendee filler of each snapshot
//     - Tolerates partial failure and reports per-event errors
//
// # Sessions
//
// A [Session] owns the current result set of an interactive browse and is passed explicitly.
// Generation tagging discards responses that arrive after a newer search has begun.
//
// # Recommendations
//
// [Recommender] scores events against favorite categories, recently viewed ids and search
// history, with a small random jitter from an injected source.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for UI rendering.
// Updates use select with default to prevent blocking.
package tasks
