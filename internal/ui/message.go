package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sioneuhlig/eventscout/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchProgress MsgKind = iota
	MsgSearchDone
	MsgViewRecorded
	MsgBrowserOpened
)

type searchProgress struct {
	gen    uint64
	update tasks.ProgressUpdate
}

type searchDone struct {
	gen    uint64
	result *tasks.SearchResult
	err    error
}

// searchProgressMsg is the constructor for [MsgSearchProgress]
func searchProgressMsg(gen uint64, update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgSearchProgress, data: searchProgress{gen, update}}
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(gen uint64, result *tasks.SearchResult, err error) Msg {
	return Msg{kind: MsgSearchDone, data: searchDone{gen, result, err}}
}

// viewRecordedMsg is the constructor for [MsgViewRecorded]
func viewRecordedMsg(err error) Msg {
	return Msg{kind: MsgViewRecorded, data: err}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
