package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marquee-tui/marquee/internal/catalog"
	"github.com/marquee-tui/marquee/internal/fetch"
)

// stubSource is a deterministic CatalogSource. Set documents can be gated
// so tests control delivery order.
type stubSource struct {
	mu       sync.Mutex
	home     []catalog.RowMetadata
	homeErr  error
	sets     map[string][]string
	setErrs  map[string]error
	setGates []chan struct{}
	setCalls int
}

func (s *stubSource) FetchHome(context.Context) ([]catalog.RowMetadata, error) {
	return s.home, s.homeErr
}

func (s *stubSource) FetchSet(_ context.Context, refID string) ([]string, error) {
	s.mu.Lock()
	var gate chan struct{}
	if s.setCalls < len(s.setGates) {
		gate = s.setGates[s.setCalls]
	}
	s.setCalls++
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err := s.setErrs[refID]; err != nil {
		return nil, err
	}
	return s.sets[refID], nil
}

func newTestModel(source CatalogSource) (*Model, *fetch.Runner) {
	runner := fetch.NewRunner()
	m := NewModel(source, runner, Options{
		Width:         80,
		Height:        24,
		FrameInterval: time.Millisecond,
	})
	return m, runner
}

// waitForSetCalls blocks until the stub has seen n set fetches, so tests
// can order gated calls deterministically.
func waitForSetCalls(t *testing.T, source *stubSource, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		source.mu.Lock()
		calls := source.setCalls
		source.mu.Unlock()
		if calls >= n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d set calls", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func receiveFetchEvent(t *testing.T, runner *fetch.Runner) fetch.Event {
	t.Helper()
	select {
	case evt := <-runner.Events():
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for fetch delivery")
		return fetch.Event{}
	}
}

func TestCatalogLoadBuildsRowsAndItems(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{{Title: "Action", RefID: "x1"}},
		sets: map[string][]string{"x1": {"u1", "u2"}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	rows := h.Model().tree.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Meta.Title != "Action" {
		t.Fatalf("expected row title Action, got %q", rows[0].Meta.Title)
	}
	items := rows[0].Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for col, it := range items {
		if it.Col != col || it.Row != 0 {
			t.Fatalf("expected item address (0,%d), got (%d,%d)", col, it.Row, it.Col)
		}
	}
}

func TestCursorMoveRightReselectsAndAnimatesToRest(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{{Title: "Action", RefID: "x1"}},
		sets: map[string][]string{"x1": {"u1", "u2"}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	items := h.Model().tree.Rows()[0].Items()
	if !items[0].Selected() {
		t.Fatalf("expected item (0,0) selected after load")
	}
	if items[0].Progress() != 5 {
		t.Fatalf("expected item (0,0) fully grown after load, got %d", items[0].Progress())
	}

	h.Send(tea.KeyMsg{Type: tea.KeyRight})

	if items[0].Selected() {
		t.Fatalf("expected item (0,0) deselected after move")
	}
	if !items[1].Selected() {
		t.Fatalf("expected item (0,1) selected after move")
	}
	if got := items[1].Progress(); got != 5 {
		t.Fatalf("expected item (0,1) progress 5 at rest, got %d", got)
	}
	if got := items[0].Progress(); got != 0 {
		t.Fatalf("expected item (0,0) progress 0 at rest, got %d", got)
	}
}

func TestEmptySetRendersEmptyRowWithHeader(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{{Title: "Originals", RefID: "x1"}},
		sets: map[string][]string{"x1": {}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	row := h.Model().tree.Rows()[0]
	if !row.Loaded() {
		t.Fatalf("expected empty row to count as loaded")
	}
	if len(row.Items()) != 0 {
		t.Fatalf("expected zero items, got %d", len(row.Items()))
	}
	if view := h.View(); !strings.Contains(view, "Originals") {
		t.Fatalf("expected row header in view:\n%s", view)
	}
}

func TestDuplicateDeliveryAppliesOnce(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{{Title: "Action", RefID: "x1"}},
		sets: map[string][]string{"x1": {"u1"}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)

	m.Init()
	homeEvt := receiveFetchEvent(t, runner)
	h.Step(fetchEventMsg{event: homeEvt})

	gen := m.tree.Generation()
	rows := m.tree.Rows()

	h.Step(fetchEventMsg{event: homeEvt})
	if m.tree.Generation() != gen {
		t.Fatalf("re-delivery mutated the tree (generation %d -> %d)", gen, m.tree.Generation())
	}
	if len(m.tree.Rows()) != len(rows) || m.tree.Rows()[0] != rows[0] {
		t.Fatalf("re-delivery replaced row nodes")
	}
}

func TestSupersededFetchResultIsIgnored(t *testing.T) {
	gate1 := make(chan struct{})
	gate2 := make(chan struct{})
	source := &stubSource{
		home:     []catalog.RowMetadata{{Title: "Action", RefID: "x1"}},
		sets:     map[string][]string{"x1": {"fresh"}},
		setGates: []chan struct{}{gate1, gate2},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)

	m.Init()
	h.Step(fetchEventMsg{event: receiveFetchEvent(t, runner)})

	row := m.tree.Rows()[0]
	if row.Loaded() {
		t.Fatalf("row must still be pending behind its gate")
	}
	waitForSetCalls(t, source, 1)

	// Re-schedule before the first fetch resolves; the first result is
	// now superseded.
	m.scheduleRowFetch(row)

	close(gate1)
	staleEvt := receiveFetchEvent(t, runner)
	h.Step(fetchEventMsg{event: staleEvt})
	if row.Loaded() {
		t.Fatalf("superseded delivery must not mutate the row")
	}

	close(gate2)
	freshEvt := receiveFetchEvent(t, runner)
	h.Step(fetchEventMsg{event: freshEvt})
	if !row.Loaded() {
		t.Fatalf("current delivery must mutate the row")
	}
	if items := row.Items(); len(items) != 1 || items[0].ImageURL != "fresh" {
		t.Fatalf("unexpected items after fresh delivery: %v", items)
	}
}

func TestRowFetchFailureIsContained(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{
			{Title: "Broken", RefID: "bad"},
			{Title: "Fine", RefID: "ok"},
		},
		sets:    map[string][]string{"ok": {"u1"}},
		setErrs: map[string]error{"bad": errors.New("set unavailable")},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	rows := h.Model().tree.Rows()
	if rows[0].Err == nil {
		t.Fatalf("expected failed row to record its error")
	}
	if rows[0].Loaded() {
		t.Fatalf("failed row must keep its placeholder state")
	}
	if !rows[1].Loaded() || len(rows[1].Items()) != 1 {
		t.Fatalf("sibling row must be unaffected by the failure")
	}

	view := h.View()
	if !strings.Contains(view, "set unavailable") {
		t.Fatalf("expected failure message in view:\n%s", view)
	}

	// The UI stays responsive after the failure.
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if h.Model().cursor.Row != 1 {
		t.Fatalf("expected cursor to move after failure, got row %d", h.Model().cursor.Row)
	}
}

func TestHomeFetchFailureShowsErrorAndStaysAlive(t *testing.T) {
	source := &stubSource{homeErr: errors.New("catalog offline")}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	if h.Model().tree.Loaded() {
		t.Fatalf("root must not be loaded after a failed catalog fetch")
	}
	if view := h.View(); !strings.Contains(view, "catalog offline") {
		t.Fatalf("expected catalog error in view:\n%s", view)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
}

func TestFuzzyJumpMovesCursorToMatchingRow(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{
			{Title: "Action", RefID: "x1"},
			{Title: "Documentaries", RefID: "x2"},
			{Title: "Originals", RefID: "x3"},
		},
		sets: map[string][]string{"x1": {"a"}, "x2": {"b"}, "x3": {"c"}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	for _, r := range "docu" {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if got := h.Model().cursor.Row; got != 1 {
		t.Fatalf("expected jump to row 1, got %d", got)
	}
	if it := h.Model().tree.SelectedItem(); it == nil || it.Row != 1 || it.Col != 0 {
		t.Fatalf("expected item (1,0) selected after jump, got %v", it)
	}
}

func TestUnclampedCursorCanLeaveContentDeselectingAll(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{{Title: "Action", RefID: "x1"}},
		sets: map[string][]string{"x1": {"u1"}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if it := h.Model().tree.SelectedItem(); it != nil {
		t.Fatalf("expected no selection past content, got item (%d,%d)", it.Row, it.Col)
	}

	h.Send(tea.KeyMsg{Type: tea.KeyUp})
	if it := h.Model().tree.SelectedItem(); it == nil {
		t.Fatalf("expected selection restored at (0,0)")
	}
}

func TestClampedCursorStaysOnContent(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{{Title: "Action", RefID: "x1"}},
		sets: map[string][]string{"x1": {"u1", "u2"}},
	}
	runner := fetch.NewRunner()
	defer runner.Stop()
	m := NewModel(source, runner, Options{
		Width:         80,
		Height:        24,
		FrameInterval: time.Millisecond,
		ClampCursor:   true,
	})
	h := NewHarness(m)
	h.Run(m.Init())

	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	h.Send(tea.KeyMsg{Type: tea.KeyRight})

	c := h.Model().cursor
	if c.Row != 0 || c.Col != 1 {
		t.Fatalf("expected clamped cursor (0,1), got (%d,%d)", c.Row, c.Col)
	}
	if it := h.Model().tree.SelectedItem(); it == nil || it.Col != 1 {
		t.Fatalf("expected item (0,1) selected, got %v", it)
	}
}

func TestSelectionInvariantUnderKeySequences(t *testing.T) {
	source := &stubSource{
		home: []catalog.RowMetadata{
			{Title: "A", RefID: "x1"},
			{Title: "B", RefID: "x2"},
		},
		sets: map[string][]string{"x1": {"a", "b", "c"}, "x2": {"d"}},
	}
	m, runner := newTestModel(source)
	defer runner.Stop()
	h := NewHarness(m)
	h.Run(m.Init())

	keys := []tea.KeyType{
		tea.KeyRight, tea.KeyDown, tea.KeyLeft, tea.KeyUp,
		tea.KeyUp, tea.KeyRight, tea.KeyRight, tea.KeyDown,
	}
	for i, k := range keys {
		h.Send(tea.KeyMsg{Type: k})
		selected := 0
		for _, row := range h.Model().tree.Rows() {
			for _, it := range row.Items() {
				if it.Selected() {
					selected++
				}
				if p := it.Progress(); p < 0 || p > 5 {
					t.Fatalf("progress %d out of bounds after key %d", p, i)
				}
			}
		}
		if selected > 1 {
			t.Fatalf("%d items selected after key %d (%s)", selected, i, fmt.Sprint(k))
		}
	}
}
