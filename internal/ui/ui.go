package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sioneuhlig/eventscout/internal/models"
	"github.com/sioneuhlig/eventscout/internal/shared"
	"github.com/sioneuhlig/eventscout/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
)

// Tab selects which events the list shows.
type Tab int

const (
	ResultsTab Tab = iota
	FavoritesTab
)

// Searcher runs one discovery search, reporting progress on the channel.
type Searcher interface {
	Search(ctx context.Context, progress chan<- tasks.ProgressUpdate, req tasks.SearchRequest) (*tasks.SearchResult, error)
}

// Favorites is the subset of the favorites store the browser needs.
type Favorites interface {
	IsFavorite(id string) bool
	Toggle(id string, snapshot *models.Event) (bool, error)
	List() ([]models.Event, error)
}

// ViewRecorder records that an event's details were opened.
type ViewRecorder interface {
	RecordView(id string) error
	TrackPopular(id string) error
}

// ModelOpts configures [NewModel].
type ModelOpts struct {
	Searcher  Searcher
	Favorites Favorites
	History   ViewRecorder
	Session   *tasks.Session
	Request   tasks.SearchRequest
	Open      func(link string) error // defaults to [shared.OpenBrowser]
	Now       func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	tab       Tab
	searcher  Searcher
	favorites Favorites
	history   ViewRecorder
	session   *tasks.Session
	request   tasks.SearchRequest
	open      func(string) error
	now       func() time.Time
	width     int
	height    int
	list      list.Model
	selected  *models.Event
	loading   bool
	progress  chan tasks.ProgressUpdate
	done      chan Msg
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Session == nil {
		opts.Session = &tasks.Session{}
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)

	return &Model{
		ctx:       ctx,
		view:      ListView,
		tab:       ResultsTab,
		searcher:  opts.Searcher,
		favorites: opts.Favorites,
		history:   opts.History,
		session:   opts.Session,
		request:   opts.Request,
		open:      opts.Open,
		now:       opts.Now,
		list:      l,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the first search.
func (m *Model) Init() tea.Cmd {
	return m.startSearch()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.view == DetailView {
			return m.handleDetailKeys(msg)
		}
		return m.handleListKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSearchProgress:
		p := msg.data.(searchProgress)
		if p.gen != m.session.Generation() {
			return m, nil
		}
		m.status = p.update.Message
		return m, m.waitForSearch(p.gen)

	case MsgSearchDone:
		d := msg.data.(searchDone)
		if d.gen != m.session.Generation() {
			return m, nil
		}
		m.loading = false
		if d.err != nil {
			m.err = d.err
			return m, nil
		}
		if err := m.session.Commit(d.gen, d.result.Events); err != nil {
			if errors.Is(err, shared.ErrStaleResponse) {
				return m, nil
			}
			m.err = err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("%d events near %s", len(d.result.Events), d.result.Location)
		m.tab = ResultsTab
		m.refreshItems()
		return m, nil

	case MsgViewRecorded:
		if err, _ := msg.data.(error); err != nil {
			m.status = styles.warn.Render(fmt.Sprintf("history not saved: %v", err))
		}
		return m, nil

	case MsgBrowserOpened:
		if err, _ := msg.data.(error); err != nil {
			m.status = styles.warn.Render(err.Error())
		}
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}
	if m.loading {
		return fmt.Sprintf("%s\n\n%s", styles.title.Render("Searching"), m.status)
	}

	switch m.view {
	case DetailView:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

// Selected returns the event whose details are open, if any.
func (m *Model) Selected() *models.Event {
	return m.selected
}

// CurrentTab reports which tab the list shows.
func (m *Model) CurrentTab() Tab {
	return m.tab
}

// Items returns the events currently in the list.
func (m *Model) Items() []models.Event {
	items := m.list.Items()
	out := make([]models.Event, 0, len(items))
	for _, it := range items {
		if ei, ok := it.(eventItem); ok {
			out = append(out, ei.event)
		}
	}
	return out
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.err = nil
		return m, m.startSearch()
	}

	if m.err != nil || m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.tab):
		if m.tab == ResultsTab {
			m.tab = FavoritesTab
		} else {
			m.tab = ResultsTab
		}
		m.refreshItems()
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if ev, ok := m.current(); ok {
			m.toggleFavorite(ev)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if ev, ok := m.current(); ok {
			m.selected = &ev
			m.view = DetailView
			return m, m.recordView(ev.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.selected = nil
		m.refreshItems()
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if m.selected != nil {
			m.toggleFavorite(*m.selected)
		}
		return m, nil
	case key.Matches(msg, m.keys.open):
		if m.selected != nil && m.selected.URL != "" {
			link := m.selected.URL
			return m, func() tea.Msg { return browserOpenedMsg(m.open(link)) }
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) current() (models.Event, bool) {
	item, ok := m.list.SelectedItem().(eventItem)
	if !ok {
		return models.Event{}, false
	}
	return item.event, true
}

func (m *Model) toggleFavorite(ev models.Event) {
	if m.favorites == nil {
		return
	}
	added, err := m.favorites.Toggle(ev.ID, &ev)
	switch {
	case err != nil:
		m.status = styles.err.Render(fmt.Sprintf("favorite not saved: %v", err))
	case added:
		m.status = styles.ok.Render("★ Added to favorites")
	default:
		m.status = "Removed from favorites"
	}
	if m.view == ListView {
		m.refreshItems()
	}
}

func (m *Model) refreshItems() {
	events := m.session.Events()
	title := "Events"
	if m.tab == FavoritesTab {
		title = "Favorites"
		events = nil
		if m.favorites != nil {
			favs, err := m.favorites.List()
			if err != nil {
				m.status = styles.err.Render(fmt.Sprintf("favorites unavailable: %v", err))
			}
			events = favs
		}
	}

	index := m.list.Index()
	m.list.SetItems(toItems(events, m.isFavorite, m.now()))
	if index < len(events) {
		m.list.Select(index)
	}
	m.list.Title = title
}

func (m *Model) isFavorite(id string) bool {
	return m.favorites != nil && m.favorites.IsFavorite(id)
}

func (m *Model) recordView(id string) tea.Cmd {
	if m.history == nil {
		return nil
	}
	return func() tea.Msg {
		if err := m.history.RecordView(id); err != nil {
			return viewRecordedMsg(err)
		}
		return viewRecordedMsg(m.history.TrackPopular(id))
	}
}

func (m *Model) startSearch() tea.Cmd {
	gen := m.session.Begin()
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan Msg, 1)
	m.progress, m.done = progress, done
	m.loading = true
	m.status = fmt.Sprintf("Searching events near %s...", m.request.Location)

	req := m.request
	go func() {
		result, err := m.searcher.Search(m.ctx, progress, req)
		close(progress)
		done <- searchDoneMsg(gen, result, err)
	}()

	return m.waitForSearch(gen)
}

func (m *Model) waitForSearch(gen uint64) tea.Cmd {
	progress, done := m.progress, m.done
	return func() tea.Msg {
		if update, ok := <-progress; ok {
			return searchProgressMsg(gen, update)
		}
		return <-done
	}
}

func (m *Model) renderTabs() string {
	results, favorites := styles.tab, styles.tab
	if m.tab == ResultsTab {
		results = styles.activeTab
	} else {
		favorites = styles.activeTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		results.Render(fmt.Sprintf("Results (%d)", len(m.session.Events()))),
		favorites.Render("Favorites"),
	)
}

func (m *Model) renderList() string {
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", m.renderTabs(), m.list.View(), m.status, helpView)
}

func (m *Model) renderDetail() string {
	e := m.selected
	if e == nil {
		return ""
	}

	title := e.Title
	if m.isFavorite(e.ID) {
		title = "★ " + title
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(categoryBadge(e.Category))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Date", fmt.Sprintf("%s (%s)", e.Date, shared.RelativeDate(e.Date, m.now())))
	row("Time", e.Time)
	row("Venue", e.Venue)
	row("Location", e.Location)
	row("Price", e.Price)
	row("Distance", fmt.Sprintf("%d miles", e.Distance))
	row("Going", fmt.Sprintf("%d", e.Attendees))
	row("Tickets", e.URL)

	width := m.width - 4
	if width <= 0 {
		width = 80
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(e.Description))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.favorite, m.keys.open, m.keys.quit}
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}
