package ports

import "context"

// Audit event kinds.
const (
	AuthEventSignIn       = "sign_in"
	AuthEventSignInFailed = "sign_in_failed"
	AuthEventSignOut      = "sign_out"
)

// AuthEvent is an audit record emitted by the authentication core.
type AuthEvent struct {
	Kind       string
	IdentityID string
	Email      string
	Reason     string // failure reason label, empty on success
}

// AuthEventSink accepts audit events for asynchronous best-effort
// processing (audit trail, last-login bookkeeping). Enqueue must never
// block the sign-in path; a full or failed sink is dropped work, not a
// sign-in failure.
type AuthEventSink interface {
	Enqueue(event AuthEvent)
}

// AuthEventService processes a single audit event.
type AuthEventService interface {
	Process(ctx context.Context, event AuthEvent) error
}
