package ports

import (
	"context"

	"github.com/stayware/hotel-console/internal/core/domain"
)

// IdentityStore is the external authority on principals and credentials.
//
// VerifyCredentials performs the lookup, the credential comparison, and the
// activity check as one atomic operation against a single fetched record;
// implementations must never split the activity check into a separate,
// racy read. It returns:
//   - domain.ErrIdentityNotFound when no identity matches the email,
//   - domain.ErrIdentityInactive when one matches but is deactivated,
//   - domain.ErrPasswordMismatch on a credential mismatch,
//   - domain.ErrIdentityStoreUnavailable when the store is unreachable or
//     returns a malformed record.
//
// RecordLastLogin is idempotent and safe to retry.
type IdentityStore interface {
	VerifyCredentials(ctx context.Context, email, password string) (*domain.Identity, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Identity, error)
	RecordLastLogin(ctx context.Context, id string) error
}
