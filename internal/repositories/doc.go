// Package repositories persists user state as typed, versioned slots.
//
// A [SlotStore] maps a slot key to an opaque JSON payload with a version number. Two backends are provided:
// [SQLiteSlotStore] over the migrated storage_slots table and [BadgerSlotStore] over an embedded Badger
// database. [OpenStore] picks one from configuration.
//
// Key Implementations:
//   - [FavoritesRepository] : favorited event snapshots keyed by id
//   - [HistoryRepository] : search history, recently viewed, preferences, location and popularity
//   - [ShareRepository] : shareable list snapshots under share_<id>
//
// Each repository operation overwrites exactly one slot. A slot whose version does not match, or whose
// payload no longer decodes, is reset to its default and a warning is logged.
package repositories
