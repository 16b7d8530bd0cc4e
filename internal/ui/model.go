package ui

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/common-nighthawk/go-figure"

	"karolbroda.com/platter/internal/artwork"
	"karolbroda.com/platter/internal/audio"
	"karolbroda.com/platter/internal/config"
	"karolbroda.com/platter/internal/crate"
	"karolbroda.com/platter/internal/logging"
	"karolbroda.com/platter/internal/station"
	"karolbroda.com/platter/internal/terminal"
	"karolbroda.com/platter/internal/track"
	"karolbroda.com/platter/internal/transfer"
)

const thumbnailSize = 48

type Searcher interface {
	Search(ctx context.Context, term string) []track.Track
}

type SleeveFetcher interface {
	Fetch(ctx context.Context, url string) (*artwork.Sleeve, error)
}

// Deck runs playback commands somewhere other than the update loop.
type Deck interface {
	Submit(cmds []station.Command)
	Events() <-chan audio.Event
}

type FrameMsg time.Time

type SearchResultMsg struct {
	Ticket  crate.Ticket
	Results []track.Track
}

type SleeveFetchedMsg struct {
	URL    string
	Sleeve *artwork.Sleeve
	Err    error
}

type DeckEventMsg struct {
	Event audio.Event
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusCrate
	focusDeck
)

type dragState struct {
	envelope transfer.Envelope
	index    int
	x, y     int
	over     bool
}

type Model struct {
	catalog  Searcher
	sleeves  SleeveFetcher
	deck     Deck
	logger   *log.Logger
	termCaps *terminal.Capabilities
	frame    time.Duration
	hideHelp bool

	crate   crate.Crate
	station station.State

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus    focusArea
	selected int
	drag     *dragState

	art     map[string]*artwork.Sleeve
	thumbs  map[string]image.Image
	pending map[string]bool
	banner  []string

	anim      AnimState
	lastFrame time.Time
	width     int
	height    int
	quitting  bool
}

type ModelConfig struct {
	Catalog       Searcher
	Artwork       SleeveFetcher
	Deck          Deck
	Logger        *log.Logger
	TermCaps      *terminal.Capabilities
	FrameInterval time.Duration
	HideHelp      bool
}

func NewModel(cfg ModelConfig) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	frame := cfg.FrameInterval
	if frame <= 0 {
		frame = config.DefaultFrameMillis * time.Millisecond
	}

	input := textinput.New()
	input.Placeholder = "artists, albums, songs..."
	input.Prompt = "♪ "
	input.CharLimit = 120
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	return Model{
		catalog:  cfg.Catalog,
		sleeves:  cfg.Artwork,
		deck:     cfg.Deck,
		logger:   logger,
		termCaps: cfg.TermCaps,
		frame:    frame,
		hideHelp: cfg.HideHelp,
		input:    input,
		spinner:  spin,
		help:     help.New(),
		keys:     defaultKeys(),
		focus:    focusSearch,
		art:      make(map[string]*artwork.Sleeve),
		thumbs:   make(map[string]image.Image),
		pending:  make(map[string]bool),
		banner:   figure.NewFigure("crates", "small", true).Slicify(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		frameCmd(m.frame),
		m.listenForDeckEvents(),
	)
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) listenForDeckEvents() tea.Cmd {
	if m.deck == nil {
		return nil
	}

	events := m.deck.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return DeckEventMsg{Event: ev}
	}
}

// layout places only the tokens that are on screen. While a search is in
// flight the crate shows the loading indicator, so nothing can be grabbed.
func (m Model) layout() Layout {
	tokens := m.crate.Len()
	if m.crate.ShowLoading() {
		tokens = 0
	}
	return computeLayout(m.width, m.height, m.bannerRows(), tokens, !m.hideHelp)
}

func (m Model) bannerRows() int {
	crateW := computeLayout(m.width, m.height, 1, 0, !m.hideHelp).Crate.W - 3
	if len(m.banner) > 0 && bannerWidth(m.banner) <= crateW {
		return len(m.banner)
	}
	return 1
}

func bannerWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, len(line))
	}
	return w
}

// Palette follows the sleeve of the record on the platter.
func (m Model) Palette() *artwork.Palette {
	if m.station.Loaded != nil {
		if sleeve, ok := m.art[m.station.Loaded.ArtworkURL]; ok && sleeve.Palette != nil {
			return sleeve.Palette
		}
	}
	return artwork.DefaultPalette()
}

func (m Model) Crate() crate.Crate     { return m.crate }
func (m Model) Station() station.State { return m.station }
func (m Model) Dragging() bool         { return m.drag != nil }
