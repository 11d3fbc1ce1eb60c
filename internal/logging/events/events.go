// Package events groups trace emission behind per-subsystem tracers so
// call sites stay one-liners.
package events

import "github.com/marquee-tui/marquee/internal/logging"

type AppTracer struct{}

type UITracer struct{}

type FetchTracer struct{}

type AnimTracer struct{}

var (
	App   = AppTracer{}
	UI    = UITracer{}
	Fetch = FetchTracer{}
	Anim  = AnimTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (UITracer) Cursor(row, col int) {
	logging.Trace("ui.cursor", map[string]interface{}{"row": row, "col": col})
}

func (UITracer) Jump(query string, row int) {
	logging.Trace("ui.jump", map[string]interface{}{"query": query, "row": row})
}

func (FetchTracer) Scheduled(kind, ref string) {
	logging.Trace("fetch.scheduled", map[string]interface{}{"kind": kind, "ref": ref})
}

func (FetchTracer) Applied(kind string, children int) {
	logging.Trace("fetch.applied", map[string]interface{}{"kind": kind, "children": children})
}

func (FetchTracer) Failed(kind string, err error) {
	if err == nil {
		return
	}
	logging.Trace("fetch.failed", map[string]interface{}{"kind": kind, "error": err.Error()})
}

func (FetchTracer) Stale() {
	logging.Trace("fetch.stale", nil)
}

func (AnimTracer) Rest() {
	logging.Trace("anim.rest", nil)
}
