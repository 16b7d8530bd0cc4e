package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"karolbroda.com/platter/internal/artwork"
	"karolbroda.com/platter/internal/audio"
	"karolbroda.com/platter/internal/crate"
	"karolbroda.com/platter/internal/station"
	"karolbroda.com/platter/internal/transfer"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.layout().Search.W-6, 8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case SleeveFetchedMsg:
		return m.handleSleeveFetched(msg)

	case DeckEventMsg:
		return m.handleDeckEvent(msg.Event)

	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus == focusSearch {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.startSearch(m.input.Value())
		case key.Matches(msg, m.keys.Leave), key.Matches(msg, m.keys.Focus):
			m.setFocus(focusCrate)
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		return m, m.setFocus(focusSearch)

	case key.Matches(msg, m.keys.Focus):
		next := focusSearch
		if m.focus == focusCrate {
			next = focusDeck
		}
		return m, m.setFocus(next)

	case key.Matches(msg, m.keys.Power):
		m.toggle()
		return m, nil

	case key.Matches(msg, m.keys.Drop):
		if m.focus != focusCrate || m.crate.ShowLoading() {
			return m, nil
		}
		env, ok := m.crate.StartDrag(m.selected)
		if !ok {
			return m, nil
		}
		return m, m.drop(env)

	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-m.layout().GridColumns())
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.layout().GridColumns())
	}

	return m, nil
}

func (m *Model) setFocus(focus focusArea) tea.Cmd {
	m.focus = focus
	if focus == focusSearch {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) moveSelection(delta int) {
	n := m.crate.Len()
	if n == 0 || m.focus != focusCrate || m.crate.ShowLoading() {
		return
	}
	m.selected = max(0, min(n-1, m.selected+delta))
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	l := m.layout()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i := l.TokenAt(msg.X, msg.Y); i >= 0 {
			env, ok := m.crate.StartDrag(i)
			if !ok {
				return m, nil
			}
			m.selected = i
			m.setFocus(focusCrate)
			m.drag = &dragState{envelope: env, index: i, x: msg.X, y: msg.Y}
			return m, nil
		}
		if l.OverPower(msg.X, msg.Y) {
			m.toggle()
			return m, nil
		}
		if l.OverSearch(msg.X, msg.Y) {
			return m, m.setFocus(focusSearch)
		}

	case tea.MouseActionMotion:
		if m.drag == nil {
			return m, nil
		}
		drag := *m.drag
		drag.x, drag.y = msg.X, msg.Y
		drag.over = l.OverPlatter(msg.X, msg.Y) && m.station.Hovering(drag.envelope)
		m.drag = &drag

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		env := m.drag.envelope
		m.drag = nil
		if l.OverPlatter(msg.X, msg.Y) {
			return m, m.drop(env)
		}
		m.logger.Debug("drag cancelled", "x", msg.X, "y", msg.Y)
	}

	return m, nil
}

// drop hands an envelope to the station and the resulting commands to the
// deck. Envelopes the station refuses change nothing.
func (m *Model) drop(env transfer.Envelope) tea.Cmd {
	next, cmds := m.station.Drop(env)
	if len(cmds) == 0 {
		m.logger.Debug("drop ignored", "content_type", env.ContentType)
		return nil
	}

	if m.station.Loaded.IsSameTrack(next.Loaded) {
		m.logger.Info("record restarted", "track", next.Loaded.Label())
	} else {
		m.logger.Info("record dropped", "track", next.Loaded.Label())
	}
	if !next.Loaded.IsPlayable() {
		m.logger.Warn("record has no preview", "track", next.Loaded.Label())
	}

	m.station = next
	m.anim.RestartMarquee()
	m.submit(cmds)

	return m.fetchSleeve(m.station.Loaded.ArtworkURL)
}

func (m *Model) toggle() {
	next, cmds := m.station.Toggle()
	m.station = next
	m.submit(cmds)
}

func (m *Model) submit(cmds []station.Command) {
	if m.deck != nil && len(cmds) > 0 {
		m.deck.Submit(cmds)
	}
}

func (m Model) startSearch(term string) (tea.Model, tea.Cmd) {
	var ticket crate.Ticket
	m.crate, ticket = m.crate.Begin(term)
	m.selected = 0
	m.drag = nil
	m.logger.Debug("search started", "term", term, "seq", ticket.Seq)

	return m, searchCmd(m.catalog, ticket)
}

func searchCmd(catalog Searcher, ticket crate.Ticket) tea.Cmd {
	return func() tea.Msg {
		if catalog == nil {
			return SearchResultMsg{Ticket: ticket}
		}
		return SearchResultMsg{
			Ticket:  ticket,
			Results: catalog.Search(context.Background(), ticket.Term),
		}
	}
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if !m.crate.IsCurrent(msg.Ticket) {
		m.logger.Debug("stale results dropped", "term", msg.Ticket.Term, "seq", msg.Ticket.Seq)
		return m, nil
	}

	m.crate = m.crate.Arrive(msg.Ticket, msg.Results)
	m.anim.RestartEntrance()
	m.selected = 0
	m.logger.Info("search finished", "term", msg.Ticket.Term, "results", m.crate.Len())

	var cmds []tea.Cmd
	for _, trk := range m.crate.Tokens() {
		if cmd := m.fetchSleeve(trk.ArtworkURL); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) fetchSleeve(url string) tea.Cmd {
	if url == "" || m.sleeves == nil || m.pending[url] {
		return nil
	}
	if _, ok := m.art[url]; ok {
		return nil
	}

	m.pending[url] = true
	fetcher := m.sleeves
	return func() tea.Msg {
		sleeve, err := fetcher.Fetch(context.Background(), url)
		return SleeveFetchedMsg{URL: url, Sleeve: sleeve, Err: err}
	}
}

func (m Model) handleSleeveFetched(msg SleeveFetchedMsg) (tea.Model, tea.Cmd) {
	delete(m.pending, msg.URL)

	if msg.Err != nil || msg.Sleeve == nil {
		m.logger.Debug("sleeve unavailable", "url", msg.URL, "err", msg.Err)
		return m, nil
	}

	m.art[msg.URL] = msg.Sleeve
	m.thumbs[msg.URL] = artwork.Thumbnail(msg.Sleeve.Image, thumbnailSize)

	return m, nil
}

func (m Model) handleDeckEvent(ev audio.Event) (tea.Model, tea.Cmd) {
	if ev.Kind == audio.EventEnded {
		next := m.station.Finished(ev.URL)
		if next == m.station {
			m.logger.Debug("end of replaced preview ignored", "url", ev.URL)
		}
		m.station = next
	}
	return m, m.listenForDeckEvents()
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.frame
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now
	m.anim.Update(dt, m.station.Playing)

	return m, frameCmd(m.frame)
}
