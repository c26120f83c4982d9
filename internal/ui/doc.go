// Package ui implements an interactive terminal event browser using bubbletea's Elm architecture.
//
// The browser has two views:
//  1. [ListView] : Search results, or saved favorites after pressing tab
//  2. [DetailView] : One event's details; opening it records a view in history
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the DiscoveryEngine. Every search is tagged with a
// [tasks.Session] generation, so results from a superseded search are dropped.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
