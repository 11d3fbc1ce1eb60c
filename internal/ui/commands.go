package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marquee-tui/marquee/internal/catalog"
	"github.com/marquee-tui/marquee/internal/fetch"
	"github.com/marquee-tui/marquee/internal/logging"
	"github.com/marquee-tui/marquee/internal/logging/events"
	"github.com/marquee-tui/marquee/internal/ui/tree"
)

// fetchEventMsg wraps one runner delivery for the control loop.
type fetchEventMsg struct {
	event fetch.Event
}

// frameMsg is one animation tick.
type frameMsg struct {
	at time.Time
}

// waitForFetchEvent blocks on the runner's delivery channel. It is
// re-armed after each delivery for as long as any fetch is outstanding.
func (m *Model) waitForFetchEvent() tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		return fetchEventMsg{event: <-runner.Events()}
	}
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

// scheduleHomeFetch starts the catalog load and records the correlation
// token on the root node.
func (m *Model) scheduleHomeFetch() {
	source := m.source
	m.tree.Pending = fetch.Schedule(m.runner, func(ctx context.Context) ([]catalog.RowMetadata, error) {
		return source.FetchHome(ctx)
	})
	events.Fetch.Scheduled("home", "")
}

// scheduleRowFetch starts one row's set load. Called when the row is
// spliced into the tree, i.e. its attach signal.
func (m *Model) scheduleRowFetch(row *tree.Row) {
	source := m.source
	refID := row.Meta.RefID
	row.Pending = fetch.Schedule(m.runner, func(ctx context.Context) ([]string, error) {
		return source.FetchSet(ctx, refID)
	})
	events.Fetch.Scheduled("set", refID)
}

func (m *Model) handleFetchEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(fetchEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyFetchEvent(eventMsg.event)
	if m.anyPending() {
		if cmd != nil {
			return tea.Batch(cmd, m.waitForFetchEvent())
		}
		return m.waitForFetchEvent()
	}
	return cmd
}

// applyFetchEvent correlates a delivery with the node that requested it
// and splices the result into that node's subtree. Deliveries whose token
// matches nothing live are dropped. Each match consumes the node's token,
// so re-delivery of the same event is a no-op.
func (m *Model) applyFetchEvent(evt fetch.Event) tea.Cmd {
	if m.tree.Pending.Claims(evt) {
		m.tree.Pending = fetch.None[[]catalog.RowMetadata]()
		meta, err := fetch.Value[[]catalog.RowMetadata](evt)
		if err != nil {
			m.tree.Err = err
			events.Fetch.Failed("home", err)
			logging.Error(err)
			return nil
		}
		rows := m.tree.ReplaceRows(meta)
		events.Fetch.Applied("home", len(rows))
		for _, row := range rows {
			m.scheduleRowFetch(row)
		}
		return m.afterReconcile()
	}

	for _, row := range m.tree.Rows() {
		if !row.Pending.Claims(evt) {
			continue
		}
		row.Pending = fetch.None[[]string]()
		urls, err := fetch.Value[[]string](evt)
		if err != nil {
			row.Err = err
			events.Fetch.Failed("set", err)
			logging.Error(err)
			return nil
		}
		row.ReplaceItems(urls)
		events.Fetch.Applied("set", len(urls))
		return m.afterReconcile()
	}

	events.Fetch.Stale()
	return nil
}

// afterReconcile re-broadcasts the cursor so an item that just
// materialised under it becomes selected, and starts the animation chain
// if the broadcast woke anything up.
func (m *Model) afterReconcile() tea.Cmd {
	m.syncViewport()
	if m.tree.Broadcast(m.cursor.Row, m.cursor.Col) {
		return m.startAnimation()
	}
	return nil
}

// startAnimation begins a tick chain unless one is already running. The
// single chain guarantees no item ever advances more than one step per
// frame interval.
func (m *Model) startAnimation() tea.Cmd {
	if m.animRunning {
		return nil
	}
	m.animRunning = true
	return m.frameTick()
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(frameMsg); !ok {
		return nil
	}
	if !m.animRunning {
		return nil
	}
	if m.tree.Animate() {
		return m.frameTick()
	}
	m.animRunning = false
	events.Anim.Rest()
	return nil
}
