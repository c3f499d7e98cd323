package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/core/ports"
)

// AuditService processes authentication audit events dequeued by the
// dispatcher: it writes the structured audit trail and records last-login
// timestamps for successful sign-ins. Everything here is best effort —
// failures are surfaced to the dispatcher for logging, never to the
// sign-in path.
type AuditService struct {
	store ports.IdentityStore
	log   zerolog.Logger
}

func NewAuditService(store ports.IdentityStore, log zerolog.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// Process handles one audit event. The internal failure kind is retained
// here in the audit trail; it is never exposed to API callers.
func (s *AuditService) Process(ctx context.Context, ev ports.AuthEvent) error {
	entry := s.log.Info().
		Str("event", ev.Kind).
		Str("email", ev.Email)
	if ev.IdentityID != "" {
		entry = entry.Str("identity_id", ev.IdentityID)
	}
	if ev.Reason != "" {
		entry = entry.Str("reason", ev.Reason)
	}
	entry.Msg("auth audit")

	if ev.Kind == ports.AuthEventSignIn && ev.IdentityID != "" {
		if err := s.store.RecordLastLogin(ctx, ev.IdentityID); err != nil {
			return fmt.Errorf("record last login for %s: %w", ev.IdentityID, err)
		}
	}
	return nil
}
