package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/core/domain"
	"github.com/stayware/hotel-console/internal/core/ports"
)

const defaultVerifyTimeout = 5 * time.Second

// CredentialVerifier turns raw credentials into a verified identity, or a
// typed failure. It normalizes input, bounds the Identity Store call, and
// emits audit events; the store itself performs the atomic
// lookup-compare-activity check.
type CredentialVerifier struct {
	store   ports.IdentityStore
	events  ports.AuthEventSink
	timeout time.Duration
	log     zerolog.Logger
}

func NewCredentialVerifier(store ports.IdentityStore, events ports.AuthEventSink, timeout time.Duration, log zerolog.Logger) *CredentialVerifier {
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	return &CredentialVerifier{store: store, events: events, timeout: timeout, log: log}
}

// Verify checks email/password against the Identity Store.
//
// Empty input after trimming is reported as a credential mismatch: the
// taxonomy is closed and an empty password can never match a stored one.
// A store call that exceeds the bound is an infrastructure failure, never
// an indefinite hang.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, domain.ErrPasswordMismatch
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	identity, err := v.store.VerifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			err = domain.ErrIdentityStoreUnavailable
		}
		v.emit(ports.AuthEvent{
			Kind:   ports.AuthEventSignInFailed,
			Email:  email,
			Reason: domain.FailureReason(err),
		})
		return nil, err
	}

	// A record that decodes into an incomplete or inactive identity is a
	// store defect; it must never be treated as authenticated.
	if !identity.Valid() || !identity.IsActive {
		v.log.Error().Str("email", email).Msg("identity store returned unusable record")
		return nil, domain.ErrIdentityStoreUnavailable
	}

	// Last-login bookkeeping is best effort and asynchronous; it can never
	// fail the sign-in.
	v.emit(ports.AuthEvent{
		Kind:       ports.AuthEventSignIn,
		IdentityID: identity.ID,
		Email:      email,
	})

	return identity, nil
}

func (v *CredentialVerifier) emit(ev ports.AuthEvent) {
	if v.events != nil {
		v.events.Enqueue(ev)
	}
}
