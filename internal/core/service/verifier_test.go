package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/core/domain"
	"github.com/stayware/hotel-console/internal/core/ports"
)

type stubIdentityStore struct {
	mu          sync.Mutex
	verifyFn    func(ctx context.Context, email, password string) (*domain.Identity, error)
	findFn      func(ctx context.Context, id string) (*domain.Identity, error)
	verifyCalls int
	lastEmail   string
	lastLogins  []string
}

func (s *stubIdentityStore) VerifyCredentials(ctx context.Context, email, password string) (*domain.Identity, error) {
	s.mu.Lock()
	s.verifyCalls++
	s.lastEmail = email
	fn := s.verifyFn
	s.mu.Unlock()
	return fn(ctx, email, password)
}

func (s *stubIdentityStore) FindActiveByID(ctx context.Context, id string) (*domain.Identity, error) {
	if s.findFn == nil {
		return nil, domain.ErrIdentityNotFound
	}
	return s.findFn(ctx, id)
}

func (s *stubIdentityStore) RecordLastLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLogins = append(s.lastLogins, id)
	return nil
}

type captureSink struct {
	mu     sync.Mutex
	events []ports.AuthEvent
}

func (s *captureSink) Enqueue(ev ports.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *captureSink) all() []ports.AuthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuthEvent, len(s.events))
	copy(out, s.events)
	return out
}

func operatorIdentity() *domain.Identity {
	return &domain.Identity{
		ID:       "id-1",
		Email:    "admin@example.com",
		Role:     domain.RolePlatformOperator,
		IsActive: true,
	}
}

func TestVerifier_Success(t *testing.T) {
	store := &stubIdentityStore{
		verifyFn: func(_ context.Context, email, password string) (*domain.Identity, error) {
			if email != "admin@example.com" || password != "correct-pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return operatorIdentity(), nil
		},
	}
	sink := &captureSink{}
	v := NewCredentialVerifier(store, sink, time.Second, zerolog.Nop())

	identity, err := v.Verify(context.Background(), "admin@example.com", "correct-pw")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if identity.Role != domain.RolePlatformOperator {
		t.Fatalf("unexpected role: %s", identity.Role)
	}

	events := sink.all()
	if len(events) != 1 || events[0].Kind != ports.AuthEventSignIn {
		t.Fatalf("expected one sign_in event, got %+v", events)
	}
	if events[0].IdentityID != "id-1" {
		t.Fatalf("event missing identity id: %+v", events[0])
	}
}

func TestVerifier_NormalizesEmail(t *testing.T) {
	store := &stubIdentityStore{
		verifyFn: func(_ context.Context, email, _ string) (*domain.Identity, error) {
			return operatorIdentity(), nil
		},
	}
	v := NewCredentialVerifier(store, nil, time.Second, zerolog.Nop())

	if _, err := v.Verify(context.Background(), "  Admin@Example.COM ", "pw"); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if store.lastEmail != "admin@example.com" {
		t.Fatalf("store saw unnormalized email %q", store.lastEmail)
	}
}

func TestVerifier_EmptyInput(t *testing.T) {
	store := &stubIdentityStore{
		verifyFn: func(_ context.Context, _, _ string) (*domain.Identity, error) {
			t.Fatalf("store must not be called for empty input")
			return nil, nil
		},
	}
	v := NewCredentialVerifier(store, nil, time.Second, zerolog.Nop())

	if _, err := v.Verify(context.Background(), "", "pw"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "a@b.com", "   "); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestVerifier_FailureKindsPreserved(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		reason string
	}{
		{"not found", domain.ErrIdentityNotFound, "not_found"},
		{"inactive", domain.ErrIdentityInactive, "inactive"},
		{"bad password", domain.ErrPasswordMismatch, "bad_password"},
		{"unavailable", domain.ErrIdentityStoreUnavailable, "infrastructure"},
	}
	for _, tc := range cases {
		store := &stubIdentityStore{
			verifyFn: func(_ context.Context, _, _ string) (*domain.Identity, error) {
				return nil, tc.err
			},
		}
		sink := &captureSink{}
		v := NewCredentialVerifier(store, sink, time.Second, zerolog.Nop())

		_, err := v.Verify(context.Background(), "x@example.com", "pw")
		if !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
		}

		events := sink.all()
		if len(events) != 1 || events[0].Kind != ports.AuthEventSignInFailed {
			t.Fatalf("%s: expected one failure event, got %+v", tc.name, events)
		}
		if events[0].Reason != tc.reason {
			t.Fatalf("%s: expected reason %q, got %q", tc.name, tc.reason, events[0].Reason)
		}
	}
}

func TestVerifier_TimeoutBecomesInfrastructureError(t *testing.T) {
	store := &stubIdentityStore{
		verifyFn: func(ctx context.Context, _, _ string) (*domain.Identity, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	v := NewCredentialVerifier(store, nil, 10*time.Millisecond, zerolog.Nop())

	_, err := v.Verify(context.Background(), "x@example.com", "pw")
	if !errors.Is(err, domain.ErrIdentityStoreUnavailable) {
		t.Fatalf("expected ErrIdentityStoreUnavailable, got %v", err)
	}
}

func TestVerifier_MalformedRecordRejected(t *testing.T) {
	store := &stubIdentityStore{
		verifyFn: func(_ context.Context, _, _ string) (*domain.Identity, error) {
			// Structurally broken: tenant role without a tenant.
			return &domain.Identity{ID: "id-2", Email: "x@example.com", Role: domain.RoleTenantOwner, IsActive: true}, nil
		},
	}
	v := NewCredentialVerifier(store, nil, time.Second, zerolog.Nop())

	if _, err := v.Verify(context.Background(), "x@example.com", "pw"); !errors.Is(err, domain.ErrIdentityStoreUnavailable) {
		t.Fatalf("expected ErrIdentityStoreUnavailable, got %v", err)
	}
}
