package fetch

import "github.com/google/uuid"

// ID is the opaque identity carried by a delivered event.
type ID string

// Token correlates a delivered result with the node that scheduled the
// work. The type parameter ties the token to the result type it was minted
// for, so a holder cannot accept a payload of the wrong shape. Tokens are
// compared by identity, never by payload.
type Token[T any] struct {
	id ID
}

// None returns the empty token. A node holding None has no fetch in flight.
func None[T any]() Token[T] {
	return Token[T]{}
}

func newToken[T any]() Token[T] {
	return Token[T]{id: ID(uuid.NewString())}
}

// Zero reports whether the token is empty.
func (t Token[T]) Zero() bool {
	return t.id == ""
}

// Claims reports whether evt carries this token's result. An empty token
// claims nothing, so a consumed or never-scheduled slot ignores every
// delivery.
func (t Token[T]) Claims(evt Event) bool {
	return !t.Zero() && t.id == evt.Token
}

// Value extracts the typed payload from a claimed event. The error is the
// work unit's own failure, if any.
func Value[T any](evt Event) (T, error) {
	var zero T
	if evt.Err != nil {
		return zero, evt.Err
	}
	value, ok := evt.Data.(T)
	if !ok {
		return zero, &PayloadError{Got: evt.Data}
	}
	return value, nil
}

// PayloadError reports a claimed event whose payload had an unexpected
// type. With tokens minted through Schedule this cannot happen; it exists
// so hand-built events in tests fail loudly instead of silently zeroing.
type PayloadError struct {
	Got interface{}
}

func (e *PayloadError) Error() string {
	return "fetch: event payload has unexpected type"
}
