package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/core/domain"
)

type stubAuthSource struct {
	state domain.AuthState
}

func (s *stubAuthSource) EnsureInitialized(_ context.Context) domain.AuthState {
	return s.state
}

func guardedContext(e *echo.Echo, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	return c, rec
}

func TestGuard_AuthorizedRoleRendersChildren(t *testing.T) {
	e := echo.New()
	auth := &stubAuthSource{state: domain.AuthState{
		Phase:    domain.PhaseReady,
		Identity: &domain.Identity{ID: "1", Email: "op@example.com", Role: domain.RolePlatformOperator, IsActive: true},
	}}

	c, rec := guardedContext(e, "/operator/overview")
	called := false
	h := Guard(OperatorArea(), auth, zerolog.Nop())(func(c echo.Context) error {
		called = true
		if c.Get(IdentityContextKey) == nil {
			t.Fatalf("identity not injected for downstream handlers")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_UnauthenticatedRedirectsToOwnSignIn(t *testing.T) {
	e := echo.New()
	auth := &stubAuthSource{state: domain.AuthState{Phase: domain.PhaseReady}}

	c, rec := guardedContext(e, "/operator/overview")
	h := Guard(OperatorArea(), auth, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/operator/sign-in" {
		t.Fatalf("expected redirect to operator sign-in, got %q", loc)
	}
}

func TestGuard_WrongRoleRedirectsToAreaSignIn(t *testing.T) {
	e := echo.New()
	// A tenant owner wandering into the operator area is sent to the
	// operator sign-in, never to the tenant one and never to an error page.
	auth := &stubAuthSource{state: domain.AuthState{
		Phase:    domain.PhaseReady,
		Identity: &domain.Identity{ID: "2", Email: "owner@example.com", Role: domain.RoleTenantOwner, TenantID: "t1", IsActive: true},
	}}

	mw := Guard(OperatorArea(), auth, zerolog.Nop())
	next := func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}

	for i := 0; i < 2; i++ {
		c, rec := guardedContext(e, "/operator/overview")
		if err := mw(next)(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("request %d: expected 302, got %d", i, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/operator/sign-in" {
			t.Fatalf("request %d: expected operator sign-in, got %q", i, loc)
		}
	}
}

func TestGuard_TenantAreaAcceptsStaffAndOwner(t *testing.T) {
	e := echo.New()
	for _, role := range []domain.Role{domain.RoleTenantOwner, domain.RoleTenantStaff} {
		auth := &stubAuthSource{state: domain.AuthState{
			Phase:    domain.PhaseReady,
			Identity: &domain.Identity{ID: "3", Email: "s@example.com", Role: role, TenantID: "t1", IsActive: true},
		}}

		c, rec := guardedContext(e, "/app/overview")
		h := Guard(TenantArea(), auth, zerolog.Nop())(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("%s: handler error: %v", role, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", role, rec.Code)
		}
	}
}

func TestGuard_CheckingWhileInitializing(t *testing.T) {
	e := echo.New()
	auth := &stubAuthSource{state: domain.AuthState{Phase: domain.PhaseInitializing}}

	c, rec := guardedContext(e, "/operator/overview")
	h := Guard(OperatorArea(), auth, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while checking, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("must not redirect before the state resolves")
	}
}

func TestGuard_ErrorPhaseSurfacesOutage(t *testing.T) {
	e := echo.New()
	auth := &stubAuthSource{state: domain.AuthState{Phase: domain.PhaseError, Err: "session restoration failed"}}

	c, rec := guardedContext(e, "/operator/overview")
	h := Guard(OperatorArea(), auth, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestGuard_SignInPathExempt(t *testing.T) {
	e := echo.New()
	auth := &stubAuthSource{state: domain.AuthState{Phase: domain.PhaseReady}}

	c, rec := guardedContext(e, "/operator/sign-in")
	h := Guard(OperatorArea(), auth, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("sign-in page must render unconditionally, got %d", rec.Code)
	}
}
