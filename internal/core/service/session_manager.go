package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/api/metrics"
	"github.com/stayware/hotel-console/internal/core/domain"
	"github.com/stayware/hotel-console/internal/core/ports"
)

const defaultRevalidateTimeout = 5 * time.Second

// SessionManager owns the one authoritative AuthState for a running
// console instance and orchestrates sign-in, sign-out, and session
// restoration. Construct exactly one per process and hand it around by
// dependency injection; never a second competing instance.
//
// Locking: mu guards the state and the listener table and is only ever
// held briefly. notifyMu serializes whole publications so that listeners
// observe states in strictly increasing order, and so that the replay a
// new subscriber receives cannot interleave with an in-flight publish.
// Listener callbacks run with notifyMu held and must not call Subscribe
// or any state-mutating operation on the manager.
type SessionManager struct {
	verifier *CredentialVerifier
	sessions ports.SessionStore
	store    ports.IdentityStore // nil disables re-validation on restore
	events   ports.AuthEventSink
	log      zerolog.Logger

	revalidateTimeout time.Duration

	mu         sync.Mutex
	notifyMu   sync.Mutex
	state      domain.AuthState
	listeners  map[int]ports.Listener
	nextID     int
	initDone   bool
	initFlight chan struct{} // non-nil while a restoration is in flight
}

func NewSessionManager(verifier *CredentialVerifier, sessions ports.SessionStore, store ports.IdentityStore, events ports.AuthEventSink, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		verifier:          verifier,
		sessions:          sessions,
		store:             store,
		events:            events,
		log:               log,
		revalidateTimeout: defaultRevalidateTimeout,
		state:             domain.AuthState{Phase: domain.PhaseUninitialized},
		listeners:         make(map[int]ports.Listener),
	}
}

// Initialize restores the last-known session. It is idempotent: once the
// state is Ready further calls return the snapshot immediately, and any
// callers arriving while a restoration is in flight wait for that same
// restoration instead of starting a second one. N concurrent callers,
// one Session Store read.
func (m *SessionManager) Initialize(ctx context.Context) domain.AuthState {
	m.mu.Lock()
	if m.initDone {
		st := cloneState(m.state)
		m.mu.Unlock()
		return st
	}
	if m.initFlight != nil {
		ch := m.initFlight
		m.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
		}
		return m.State()
	}
	ch := make(chan struct{})
	m.initFlight = ch
	m.mu.Unlock()

	restored := false
	defer func() {
		if r := recover(); r != nil {
			// Truly unexpected faults become a state transition, never a
			// panic escaping into the view layer.
			m.log.Error().Interface("panic", r).Msg("session restoration panicked")
			m.publish(domain.AuthState{Phase: domain.PhaseError, Err: "session restoration failed"})
		}
		m.mu.Lock()
		m.initDone = restored
		m.initFlight = nil
		m.mu.Unlock()
		close(ch)
	}()

	m.publish(domain.AuthState{Phase: domain.PhaseInitializing})
	identity := m.restore(ctx)
	m.publish(domain.AuthState{Phase: domain.PhaseReady, Identity: identity})
	restored = true

	return m.State()
}

// restore loads the cached identity and, when an Identity Store is
// configured, re-validates it. A definitive negative (gone or inactive)
// evicts the cached payload; an unreachable store fails open to
// signed-out without evicting, so the next start can try again.
func (m *SessionManager) restore(ctx context.Context) *domain.Identity {
	identity, err := m.sessions.Load(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("session store unreadable, starting signed out")
		metrics.SessionRestoresTotal.WithLabelValues("unavailable").Inc()
		return nil
	}
	if identity == nil {
		metrics.SessionRestoresTotal.WithLabelValues("empty").Inc()
		return nil
	}
	if m.store == nil {
		metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
		return identity
	}

	rctx, cancel := context.WithTimeout(ctx, m.revalidateTimeout)
	defer cancel()

	fresh, err := m.store.FindActiveByID(rctx, identity.ID)
	switch {
	case err == nil:
		metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
		return fresh
	case errors.Is(err, domain.ErrIdentityNotFound), errors.Is(err, domain.ErrIdentityInactive):
		metrics.SessionRestoresTotal.WithLabelValues("evicted").Inc()
		m.log.Info().
			Str("identity_id", identity.ID).
			Str("reason", domain.FailureReason(err)).
			Msg("cached identity no longer valid, evicting")
		if cerr := m.sessions.Clear(ctx); cerr != nil {
			m.log.Warn().Err(cerr).Msg("failed to evict stale session")
		}
		return nil
	default:
		m.log.Warn().Err(err).Msg("identity re-validation unavailable, starting signed out")
		metrics.SessionRestoresTotal.WithLabelValues("unavailable").Inc()
		return nil
	}
}

// SignIn verifies credentials and establishes the session. Credential
// failures keep the phase at Ready with no identity; PhaseError is
// reserved for infrastructure faults during restoration, never for a bad
// password.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) (identity *domain.Identity, err error) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error().Interface("panic", r).Msg("sign-in panicked")
			m.publish(domain.AuthState{Phase: domain.PhaseReady})
			identity, err = nil, domain.ErrIdentityStoreUnavailable
		}
	}()

	identity, err = m.verifier.Verify(ctx, email, password)
	if err != nil {
		m.publish(domain.AuthState{Phase: domain.PhaseReady})
		return nil, err
	}

	if serr := m.sessions.Save(ctx, *identity); serr != nil {
		// The session simply will not survive a restart; the sign-in
		// itself succeeded.
		m.log.Warn().Err(serr).Msg("failed to persist session")
	}

	// A successful sign-in settles initialization: a later Initialize must
	// not re-run restoration over the live session.
	m.mu.Lock()
	m.initDone = true
	m.mu.Unlock()

	m.publish(domain.AuthState{Phase: domain.PhaseReady, Identity: identity})
	return identity, nil
}

// SignOut clears the cached identity. Local clearing always succeeds from
// the caller's perspective; a failing remote store only costs us the
// eviction of the durable copy, which is retried on next restore.
func (m *SessionManager) SignOut(ctx context.Context) {
	prev := m.State().Identity

	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear session store on sign-out")
	}
	m.publish(domain.AuthState{Phase: domain.PhaseReady})

	if m.events != nil && prev != nil {
		m.events.Enqueue(ports.AuthEvent{
			Kind:       ports.AuthEventSignOut,
			IdentityID: prev.ID,
			Email:      prev.Email,
		})
	}
}

// State returns the current snapshot. Never blocks on I/O.
func (m *SessionManager) State() domain.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state)
}

// Subscribe registers fn and synchronously replays the current state to
// it before returning, so a late subscriber never waits for the next
// change to learn the current truth. The returned function removes the
// listener; it is safe to call more than once.
func (m *SessionManager) Subscribe(fn ports.Listener) func() {
	m.notifyMu.Lock()
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	cur := cloneState(m.state)
	m.mu.Unlock()
	fn(cur)
	m.notifyMu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// publish installs the new state and notifies all listeners under the
// notify lock, keeping publications strictly ordered.
func (m *SessionManager) publish(st domain.AuthState) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	m.state = st
	fns := make([]ports.Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(cloneState(st))
	}
}

// cloneState deep-copies the snapshot so consumers can never mutate the
// manager's authoritative state through a shared Identity pointer.
func cloneState(st domain.AuthState) domain.AuthState {
	if st.Identity != nil {
		id := *st.Identity
		st.Identity = &id
	}
	return st
}
