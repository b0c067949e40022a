// Package identity defines the boundary to the requester's saved personal
// data. The actual storage (browser storage, disk, nothing at all) belongs to
// the host; the lifecycle only ever sees this interface and must work with an
// always-empty store when the user has not consented to saving identity data.
package identity

import (
	"context"

	"github.com/goliatone/go-lettergen/pkg/request"
)

// Store reads and persists identity fields and the saved signature. Getter
// results may be nil/empty without error; that simply means nothing is saved.
type Store interface {
	// GetAll returns the saved fields, optionally including the ones marked
	// optional.
	GetAll(ctx context.Context, includeOptional bool) ([]request.IdentityField, error)
	// GetSignature returns the saved signature, or nil when none is stored.
	GetSignature(ctx context.Context) (*request.Signature, error)
	// GetFixed returns the canonical saved field of the given kind, or nil.
	GetFixed(ctx context.Context, kind string) (*request.IdentityField, error)
	// StoreArray persists the fields, replacing saved values of the same kind.
	StoreArray(ctx context.Context, fields []request.IdentityField) error
	// StoreSignature persists the signature.
	StoreSignature(ctx context.Context, sig request.Signature) error
}

// Nop is the always-empty store used when identity persistence is not
// consented to or not available.
type Nop struct{}

// GetAll implements Store.
func (Nop) GetAll(context.Context, bool) ([]request.IdentityField, error) { return nil, nil }

// GetSignature implements Store.
func (Nop) GetSignature(context.Context) (*request.Signature, error) { return nil, nil }

// GetFixed implements Store.
func (Nop) GetFixed(context.Context, string) (*request.IdentityField, error) { return nil, nil }

// StoreArray implements Store.
func (Nop) StoreArray(context.Context, []request.IdentityField) error { return nil }

// StoreSignature implements Store.
func (Nop) StoreSignature(context.Context, request.Signature) error { return nil }
