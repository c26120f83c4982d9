// Package models defines the domain types shared by the event discovery packages.
//
//   - [Event] : the normalized event record produced from upstream data
//   - [SearchOptions] : structured parameters for an upstream search
//   - [SearchEntry] : one recorded search in the history log
//   - [FilterCriteria] : filter/sort selections, also persisted as preferences
//   - [SharedList] : a snapshot of events published under a share id
//
// Struct tags drive both JSON encoding and validation via [Validate].
package models
