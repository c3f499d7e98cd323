package ports

import (
	"context"

	"github.com/stayware/hotel-console/internal/core/domain"
)

// SessionStore is the durable cache of the last-known identity, surviving
// console restarts. The Session Manager is the single writer; no other
// component calls Save or Clear.
//
// Load validates the stored payload defensively: a payload that does not
// deserialize into a structurally complete identity is treated as absent
// and the store clears itself as a side effect rather than returning an
// error upward.
type SessionStore interface {
	Save(ctx context.Context, identity domain.Identity) error
	Load(ctx context.Context) (*domain.Identity, error)
	Clear(ctx context.Context) error
}
