package identity

import (
	"context"
	"sync"

	"github.com/goliatone/go-lettergen/pkg/request"
)

// Memory is an in-process Store. It backs tests and hosts without durable
// storage.
type Memory struct {
	mu        sync.RWMutex
	order     []string
	fields    map[string]request.IdentityField
	signature *request.Signature
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{fields: make(map[string]request.IdentityField)}
}

// GetAll implements Store.
func (m *Memory) GetAll(_ context.Context, includeOptional bool) ([]request.IdentityField, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]request.IdentityField, 0, len(m.order))
	for _, kind := range m.order {
		f := m.fields[kind]
		if f.Optional && !includeOptional {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// GetSignature implements Store.
func (m *Memory) GetSignature(context.Context) (*request.Signature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.signature == nil {
		return nil, nil
	}
	sig := *m.signature
	return &sig, nil
}

// GetFixed implements Store.
func (m *Memory) GetFixed(_ context.Context, kind string) (*request.IdentityField, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.fields[kind]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// StoreArray implements Store. Fields with empty values do not erase saved
// data; the user keeps whatever they stored last.
func (m *Memory) StoreArray(_ context.Context, fields []request.IdentityField) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range fields {
		if f.Value.IsEmpty() {
			continue
		}
		if _, exists := m.fields[f.Kind]; !exists {
			m.order = append(m.order, f.Kind)
		}
		m.fields[f.Kind] = f
	}
	return nil
}

// StoreSignature implements Store.
func (m *Memory) StoreSignature(_ context.Context, sig request.Signature) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.signature = &sig
	return nil
}
