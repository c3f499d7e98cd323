package api

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stayware/hotel-console/internal/core/domain"
	"github.com/stayware/hotel-console/internal/core/ports"
)

// AuthProvider bridges the Session Manager into the HTTP layer. One
// instance per running application: it subscribes to the manager for its
// whole lifetime, caches the latest snapshot for cheap reads, and wraps
// SignIn/SignOut with an in-flight flag that the UI uses to disable
// duplicate submits. Close unsubscribes; a closed provider leaks no
// listener.
type AuthProvider struct {
	manager  ports.SessionManager
	unsub    func()
	inFlight atomic.Bool

	mu      sync.RWMutex
	current domain.AuthState
}

func NewAuthProvider(manager ports.SessionManager) *AuthProvider {
	p := &AuthProvider{manager: manager}
	p.unsub = manager.Subscribe(func(st domain.AuthState) {
		p.mu.Lock()
		p.current = st
		p.mu.Unlock()
	})
	return p
}

// Close detaches the provider from the Session Manager. Safe to call
// more than once.
func (p *AuthProvider) Close() {
	p.unsub()
}

// Current returns the cached snapshot without touching the manager.
func (p *AuthProvider) Current() domain.AuthState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// EnsureInitialized triggers (or joins) session restoration and returns
// the resolved state.
func (p *AuthProvider) EnsureInitialized(ctx context.Context) domain.AuthState {
	return p.manager.Initialize(ctx)
}

// SignIn proxies to the Session Manager, tracking the in-flight flag.
// Duplicate-submit protection is the UI's job via InFlight; the manager
// itself accepts concurrent calls and lets the last completion win.
func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	p.inFlight.Store(true)
	defer p.inFlight.Store(false)
	return p.manager.SignIn(ctx, email, password)
}

// SignOut proxies to the Session Manager.
func (p *AuthProvider) SignOut(ctx context.Context) {
	p.manager.SignOut(ctx)
}

// InFlight reports whether a sign-in is currently pending.
func (p *AuthProvider) InFlight() bool {
	return p.inFlight.Load()
}
