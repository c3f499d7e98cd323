package ports

import (
	"context"

	"github.com/stayware/hotel-console/internal/core/domain"
)

// Listener receives AuthState snapshots. Publications are strictly
// ordered: a listener never observes an older state after a newer one.
type Listener func(domain.AuthState)

// SessionManager orchestrates sign-in, sign-out, and session restoration,
// and owns the one authoritative AuthState.
type SessionManager interface {
	// Initialize restores the session from the SessionStore. It is
	// idempotent: once Ready, further calls return immediately, and
	// concurrent callers collapse onto a single in-flight restoration.
	Initialize(ctx context.Context) domain.AuthState

	// SignIn verifies credentials and, on success, persists and publishes
	// the identity. Credential failures leave the phase at Ready with no
	// identity; the typed error is returned to the caller.
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)

	// SignOut clears the cached identity locally. It always succeeds from
	// the caller's perspective.
	SignOut(ctx context.Context)

	// State returns the current snapshot without blocking.
	State() domain.AuthState

	// Subscribe registers a listener and synchronously replays the
	// current state to it before returning. The returned function
	// unsubscribes.
	Subscribe(fn Listener) (unsubscribe func())
}
