// Package tui is the interactive launcher: a platform menu and a game list
// per platform or view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/watch"
)

// Options connects the launcher to the rest of the application. Every
// callback runs on the UI goroutine except Scan, which runs in a tea.Cmd
// and must not touch the store.
type Options struct {
	Store *catalog.Store
	Sort  catalog.SortOptions
	// MaxResults caps search hits; zero means no cap.
	MaxResults int

	// Launch starts g and records the launch.
	Launch func(g *catalog.Game) error
	// OpenClient opens a platform's own client.
	OpenClient func(p catalog.Platform) error
	// Save persists the store.
	Save func(s *catalog.Store) error
	// Scan collects a fresh batch from every platform and names the
	// platforms whose scan failed.
	Scan func(ctx context.Context) ([]*catalog.Game, []catalog.Platform, error)
	// Reload reads the library file again after an outside edit.
	Reload func() (*catalog.Store, error)

	// Changes delivers file system changes; nil disables watching.
	Changes     <-chan watch.Event
	LibraryPath string
	CustomDir   string

	ScanOnStart bool
	Logger      *slog.Logger
}

type screen int

const (
	screenHub screen = iota
	screenGames
)

// ownWriteWindow is how long after saving a library change event is taken
// to be our own write.
const ownWriteWindow = 2 * time.Second

type (
	scanDoneMsg struct {
		batch  []*catalog.Game
		failed []catalog.Platform
		err    error
	}
	changeMsg watch.Event
)

type model struct {
	opts   Options
	store  *catalog.Store
	sort   catalog.SortOptions
	logger *slog.Logger

	screen screen
	hub    list.Model
	games  list.Model
	view   catalog.Platform

	input     textinput.Model
	searching bool

	spinner  spinner.Model
	scanning bool

	status    string
	statusErr bool
	activeCmd string
	lastSave  time.Time

	hubKeys  hubKeys
	gameKeys gameKeys
	width    int
	height   int
}

func newModel(opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	in := textinput.New()
	in.Prompt = "search: "
	in.Placeholder = "title or alias"
	in.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleHighlight

	m := model{
		opts:     opts,
		store:    opts.Store,
		sort:     opts.Sort,
		logger:   logger,
		hub:      newHubList(opts.Store),
		games:    newGameList(opts.Store, catalog.All),
		view:     catalog.All,
		input:    in,
		spinner:  sp,
		hubKeys:  newHubKeys(),
		gameKeys: newGameKeys(),
	}
	if opts.ScanOnStart && opts.Scan != nil {
		m.scanning = true
		m.status = "scanning…"
	}
	return m
}

func (m model) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, waitForChange(m.opts.Changes))
	if m.scanning {
		cmds = append(cmds, m.spinner.Tick, scanCmd(m.opts.Scan))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := StyleBorder.GetFrameSize()
		const chrome = 3 // header or input, status, footer
		w := max(msg.Width-h, 40)
		ht := max(msg.Height-v-chrome, 5)
		m.hub.SetSize(w, ht)
		m.games.SetSize(w, ht)
		return m, nil

	case clearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanDoneMsg:
		return m.finishScan(msg), nil

	case changeMsg:
		cmd := m.handleChange(watch.Event(msg))
		return m, tea.Batch(cmd, waitForChange(m.opts.Changes))

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.screen == screenHub {
			return m.updateHub(msg)
		}
		return m.updateGames(msg)
	}

	var cmd tea.Cmd
	if m.screen == screenHub {
		m.hub, cmd = m.hub.Update(msg)
	} else {
		m.games, cmd = m.games.Update(msg)
	}
	return m, cmd
}

func (m model) updateHub(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.hubKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.hubKeys.Rescan):
		return m, m.startScan()
	case key.Matches(msg, m.hubKeys.Select):
		if item, ok := m.hub.SelectedItem().(hubItem); ok {
			m.openView(item.platform)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.hub, cmd = m.hub.Update(msg)
	return m, cmd
}

func (m model) updateGames(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.gameKeys
	g := m.selected()

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Back):
		m.screen = screenHub
		m.refresh()
		return m, nil
	case key.Matches(msg, k.Search):
		m.searching = true
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, k.Rescan):
		return m, m.startScan()
	case key.Matches(msg, k.CycleSort):
		m.sort.Method = m.sort.Method.Next()
		m.store.Sort(m.sort)
		m.refresh()
		m.setStatus("sorted by " + m.sort.Method.String())
		return m.highlight(msg)
	case key.Matches(msg, k.ClearNew):
		m.store.ClearNew()
		m.save()
		m.refresh()
		return m.highlight(msg)
	}

	if g == nil {
		var cmd tea.Cmd
		m.games, cmd = m.games.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, k.Launch):
		m.launch(g)
	case key.Matches(msg, k.Favourite):
		on := m.store.ToggleFavourite(g, m.sort)
		m.save()
		m.refresh()
		m.setStatus(fmt.Sprintf("%s %s", g.Title(), onOff(on, "favourited", "unfavourited")))
	case key.Matches(msg, k.Hide):
		on := m.store.ToggleHidden(g, m.sort)
		m.save()
		m.refresh()
		m.setStatus(fmt.Sprintf("%s %s", g.Title(), onOff(on, "hidden", "shown")))
	case key.Matches(msg, k.RateUp), key.Matches(msg, k.RateDown):
		changed := g.DecrementRating
		if key.Matches(msg, k.RateUp) {
			changed = g.IncrementRating
		}
		if changed() {
			m.store.Sort(m.sort)
			m.save()
			m.refresh()
		}
		m.setStatus(fmt.Sprintf("%s rated %d", g.Title(), g.Rating()))
	case key.Matches(msg, k.OpenClient):
		if m.opts.OpenClient != nil {
			if err := m.opts.OpenClient(g.Platform()); err != nil {
				m.setError(err)
			}
		}
	default:
		var cmd tea.Cmd
		m.games, cmd = m.games.Update(msg)
		return m, cmd
	}
	return m.highlight(msg)
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		hits := m.store.Search(m.input.Value(), m.opts.MaxResults)
		if hits == nil {
			return m, nil
		}
		m.openView(catalog.Search)
		m.setStatus(fmt.Sprintf("%d matches for %q", len(hits), m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) highlight(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.activeCmd = msg.String()
	return *m, highlightCmd()
}

func (m model) selected() *catalog.Game {
	if item, ok := m.games.SelectedItem().(gameItem); ok {
		return item.game
	}
	return nil
}

func (m *model) openView(view catalog.Platform) {
	m.view = view
	m.screen = screenGames
	m.games.Title = view.String()
	m.games.SetItems(gameItems(m.store, view))
	m.games.Select(0)
}

// refresh rebuilds both lists from the store, keeping the cursor in range.
func (m *model) refresh() {
	m.hub.SetItems(hubItems(m.store))
	idx := m.games.Index()
	items := gameItems(m.store, m.view)
	m.games.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	m.games.Select(max(idx, 0))
}

func (m *model) launch(g *catalog.Game) {
	if m.opts.Launch == nil {
		return
	}
	if err := m.opts.Launch(g); err != nil {
		m.setError(err)
		return
	}
	m.lastSave = time.Now()
	m.store.Sort(m.sort)
	m.refresh()
	m.setStatus("launched " + g.Title())
}

func (m *model) save() {
	if m.opts.Save == nil {
		return
	}
	if err := m.opts.Save(m.store); err != nil {
		m.setError(err)
		return
	}
	m.lastSave = time.Now()
}

func (m *model) startScan() tea.Cmd {
	if m.scanning || m.opts.Scan == nil {
		return nil
	}
	m.scanning = true
	m.setStatus("scanning…")
	return tea.Batch(m.spinner.Tick, scanCmd(m.opts.Scan))
}

func scanCmd(scan func(context.Context) ([]*catalog.Game, []catalog.Platform, error)) tea.Cmd {
	if scan == nil {
		return nil
	}
	return func() tea.Msg {
		batch, failed, err := scan(context.Background())
		return scanDoneMsg{batch: batch, failed: failed, err: err}
	}
}

func (m model) finishScan(msg scanDoneMsg) model {
	m.scanning = false
	if msg.err != nil {
		m.setError(fmt.Errorf("scan: %w", msg.err))
		return m
	}
	res := m.store.Merge(msg.batch, msg.failed...)
	m.store.Sort(m.sort)
	m.save()
	m.refresh()
	m.logger.Info("scan merged", "added", len(res.Added), "removed", len(res.Removed), "failed", len(msg.failed), "total", m.store.Len())
	if m.statusErr {
		return m
	}
	status := fmt.Sprintf("scan: %d new, %d removed", len(res.Added), len(res.Removed))
	if len(msg.failed) > 0 {
		names := make([]string, len(msg.failed))
		for i, p := range msg.failed {
			names[i] = p.String()
		}
		status += "; kept " + strings.Join(names, ", ") + " after scan errors"
	}
	m.setStatus(status)
	return m
}

func waitForChange(ch <-chan watch.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg(ev)
	}
}

// handleChange rescans when the custom games directory changes and reloads
// after an outside edit of the library file.
func (m *model) handleChange(ev watch.Event) tea.Cmd {
	if m.opts.CustomDir != "" && ev.Has(m.opts.CustomDir) {
		return m.startScan()
	}
	if m.opts.LibraryPath == "" || !ev.Has(m.opts.LibraryPath) || m.opts.Reload == nil {
		return nil
	}
	if time.Since(m.lastSave) < ownWriteWindow {
		return nil
	}
	s, err := m.opts.Reload()
	if err != nil {
		m.setError(fmt.Errorf("reload: %w", err))
		return nil
	}
	s.Sort(m.sort)
	m.store = s
	m.refresh()
	m.setStatus("library reloaded")
	return nil
}

func (m *model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *model) setError(err error) {
	m.logger.Warn("launcher action failed", "error", err)
	m.status, m.statusErr = err.Error(), true
}

func onOff(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

func (m model) View() string {
	var body string
	if m.screen == screenHub {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Padding(0, 1).
			Render("gamedock")
		summary := StyleHelp.Render(fmt.Sprintf("  %d games · sorted by %s", m.store.Len(), m.sort.Method))
		body = lipgloss.JoinVertical(lipgloss.Left, header+summary, m.hub.View())
	} else {
		body = m.games.View()
	}

	var lines []string
	lines = append(lines, body)
	if m.searching {
		lines = append(lines, m.input.View())
	}
	lines = append(lines, m.statusLine())
	if m.screen == screenGames {
		lines = append(lines, renderFooterBar(m.gameKeys.footer(), m.activeCmd))
	}
	return StyleBorder.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m model) statusLine() string {
	switch {
	case m.scanning:
		return " " + m.spinner.View() + " " + StyleHelp.Render(m.status)
	case m.statusErr:
		return " " + StyleError.Render(m.status)
	default:
		return " " + StyleHelp.Render(m.status)
	}
}

// Run opens the launcher and blocks until the user quits.
func Run(opts Options) error {
	if opts.Store == nil {
		return errors.New("launcher needs a store")
	}
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running launcher: %w", err)
	}
	return nil
}
