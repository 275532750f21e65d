// Package flash keeps messages that live for exactly one redirect.
//
// A Store holds per-session queues keyed by message name. Writing appends
// to the queue; reading returns the whole queue and clears it, so a
// message is shown once. Flash binds a Store to one session and travels
// in the request context.
package flash

import (
	"context"

	"github.com/rs/zerolog"
)

// Message keys used by the people pages.
const (
	KeySuccess           = "success"
	KeyError             = "error"
	KeyPeopleCountChange = "peopleCountChange"
)

// Store persists flash queues per session.
type Store interface {
	// Add appends value to the queue of key in session sessionID.
	Add(ctx context.Context, sessionID, key, value string) error

	// Consume returns all values queued under key and removes them.
	// An empty queue yields nil and no error.
	Consume(ctx context.Context, sessionID, key string) ([]string, error)
}

// Flash is a Store bound to one session.
//
// Store failures never fail the request: a lost flash message is logged
// and the page renders without it.
type Flash struct {
	store     Store
	sessionID string
	log       *zerolog.Logger
}

// New binds store to sessionID.
func New(store Store, sessionID string, log *zerolog.Logger) *Flash {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Flash{store: store, sessionID: sessionID, log: log}
}

// SessionID returns the session the flash is bound to.
func (f *Flash) SessionID() string {
	return f.sessionID
}

// Set queues value under key for the next render.
func (f *Flash) Set(ctx context.Context, key, value string) {
	if err := f.store.Add(ctx, f.sessionID, key, value); err != nil {
		f.log.Error().Err(err).Str("flash_key", key).Msg("failed to store flash message")
	}
}

// Get consumes every message queued under key.
func (f *Flash) Get(ctx context.Context, key string) []string {
	values, err := f.store.Consume(ctx, f.sessionID, key)
	if err != nil {
		f.log.Error().Err(err).Str("flash_key", key).Msg("failed to read flash message")
		return nil
	}
	return values
}

type contextKey struct{}

// NewContext returns ctx carrying f.
func NewContext(ctx context.Context, f *Flash) context.Context {
	return context.WithValue(ctx, contextKey{}, f)
}

// FromContext returns the Flash carried by ctx. Without one, it returns a
// Flash that drops writes and reads nothing, so callers never nil-check.
func FromContext(ctx context.Context) *Flash {
	if f, ok := ctx.Value(contextKey{}).(*Flash); ok {
		return f
	}
	return New(discard, "", nil)
}

var discard = &discardStore{}

type discardStore struct{}

func (*discardStore) Add(context.Context, string, string, string) error { return nil }

func (*discardStore) Consume(context.Context, string, string) ([]string, error) { return nil, nil }
