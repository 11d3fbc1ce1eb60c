// Package fetch runs units of work off the UI control loop and delivers
// each result exactly once, tagged with a correlation token minted at
// schedule time.
package fetch

import (
	"context"
	"sync"
)

// Event conveys one completed unit of work, or its failure, back to the
// control loop.
type Event struct {
	Token ID
	Data  interface{}
	Err   error
}

// Runner owns the worker goroutines and the delivery channel. Deliveries
// are unordered across tasks; each task delivers at most once.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewRunner creates a Runner ready to accept work.
func NewRunner() *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}
}

// Events returns the delivery channel. The channel is never closed while
// the runner is live; after Stop and Wait no further events arrive.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Stop cancels the runner. In-flight work finishes but its delivery is
// dropped. Use Wait when a clean drain is required (e.g. in tests).
func (r *Runner) Stop() {
	r.cancel()
}

// Wait blocks until all worker goroutines have exited. Call after Stop.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Schedule runs work on a worker goroutine and returns the token the
// eventual delivery will carry. The caller stores the token; delivery
// handlers match it with Token.Claims before applying the result.
func Schedule[T any](r *Runner, work func(context.Context) (T, error)) Token[T] {
	token := newToken[T]()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		data, err := work(r.ctx)
		evt := Event{Token: token.id, Err: err}
		if err == nil {
			evt.Data = data
		}
		if r.ctx.Err() != nil {
			return
		}
		select {
		case <-r.ctx.Done():
		case r.events <- evt:
		}
	}()
	return token
}
