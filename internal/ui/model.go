package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marquee-tui/marquee/internal/catalog"
	"github.com/marquee-tui/marquee/internal/fetch"
	"github.com/marquee-tui/marquee/internal/theme"
	"github.com/marquee-tui/marquee/internal/ui/state"
	"github.com/marquee-tui/marquee/internal/ui/tree"
)

var styles = theme.Default()

const defaultFrameInterval = 33 * time.Millisecond

// CatalogSource is the fetch collaborator: the home document naming the
// rows, and one set document per row.
type CatalogSource interface {
	FetchHome(ctx context.Context) ([]catalog.RowMetadata, error)
	FetchSet(ctx context.Context, refID string) ([]string, error)
}

// Options carries the UI knobs from the configuration layer.
type Options struct {
	Width         int
	Height        int
	FrameInterval time.Duration
	ClampCursor   bool
	Verbose       bool
}

type msgHandler func(tea.Msg) tea.Cmd

// Model implements tea.Model for the browse screen. It owns the node
// tree, the selection cursor, and the pending-fetch bookkeeping.
type Model struct {
	source CatalogSource
	runner *fetch.Runner
	tree   *tree.Root
	cursor state.Cursor

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	verbose     bool

	frameInterval time.Duration
	animRunning   bool
	rowOffset     int

	searching bool
	query     string

	spin spinner.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel constructs the model. No fetch is scheduled here; Init is the
// attach signal that starts the catalog load.
func NewModel(source CatalogSource, runner *fetch.Runner, opts Options) *Model {
	m := &Model{
		source:        source,
		runner:        runner,
		tree:          tree.NewRoot(),
		cursor:        state.Cursor{Clamp: opts.ClampCursor},
		verbose:       opts.Verbose,
		frameInterval: opts.FrameInterval,
	}
	if m.frameInterval <= 0 {
		m.frameInterval = defaultFrameInterval
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if styles.Loading != nil {
		s.Style = *styles.Loading
	}
	m.spin = s
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It schedules the catalog
// fetch and starts the delivery pump.
func (m *Model) Init() tea.Cmd {
	m.scheduleHomeFetch()
	return tea.Batch(m.waitForFetchEvent(), m.spin.Tick)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(fetchEventMsg{}):     m.handleFetchEventMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	sizeMsg, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = sizeMsg.Width
	}
	if !m.fixedHeight {
		m.height = sizeMsg.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.anyPending() {
		return nil
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return cmd
}

// anyPending reports whether any node is still waiting on its fetch.
// Failed nodes are settled: they keep their error state, not a spinner.
func (m *Model) anyPending() bool {
	if !m.tree.Loaded() && m.tree.Err == nil {
		return true
	}
	for _, row := range m.tree.Rows() {
		if !row.Loaded() && row.Err == nil {
			return true
		}
	}
	return false
}
