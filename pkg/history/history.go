// Package history is the boundary to the "my requests" store that remembers
// finished requests so the user can later compose responses (admonitions,
// complaints) referencing them.
package history

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-lettergen/pkg/request"
)

// ErrNotFound signals that no entry exists under the requested key.
var ErrNotFound = errors.New("history: entry not found")

// Entry summarises one finished request.
type Entry struct {
	Reference        string
	Date             string
	Type             request.Type
	ResponseType     string
	RecipientSlug    string
	RecipientAddress string
	TransportMedium  request.TransportMedium
}

// Key derives the storage key for an entry:
// `{reference}-{type}` plus `-{responseType}` for custom responses.
func Key(e Entry) string {
	key := e.Reference + "-" + string(e.Type)
	if e.Type == request.TypeCustom && e.ResponseType != "" {
		key += "-" + e.ResponseType
	}
	return key
}

// Store persists and retrieves entries. Write failures are reported to the
// caller but must never abort the surrounding flow.
type Store interface {
	Put(ctx context.Context, e Entry) error
	Get(ctx context.Context, key string) (Entry, error)
}

// Memory is an in-process Store for tests and storage-less hosts.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[Key(e)] = e
	return nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}
