package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayware/hotel-console/internal/api/metrics"
	"github.com/stayware/hotel-console/internal/core/domain"
)

// SessionProvider is the slice of the auth provider the handlers need.
type SessionProvider interface {
	Current() domain.AuthState
	EnsureInitialized(ctx context.Context) domain.AuthState
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	SignOut(ctx context.Context)
	InFlight() bool
}

type AuthHandler struct {
	provider SessionProvider
}

func NewAuthHandler(provider SessionProvider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Phase         domain.Phase     `json:"phase"`
	Identity      *domain.Identity `json:"identity,omitempty"`
	SignInPending bool             `json:"sign_in_pending,omitempty"`
}

// SignIn authenticates and establishes the console session.
//
// The three credential failure kinds deliberately collapse into one
// uniform message here, at the boundary closest to the UI; only an
// Identity Store outage gets its own, more actionable message.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	identity, err := h.provider.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(domain.FailureReason(err)).Inc()
		switch {
		case domain.IsCredentialFailure(err):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": domain.MsgInvalidCredentials})
		case errors.Is(err, domain.ErrIdentityStoreUnavailable):
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": domain.MsgAuthUnavailable})
		default:
			return err
		}
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Phase: domain.PhaseReady, Identity: identity})
}

// SignOut ends the console session. Always succeeds.
func (h *AuthHandler) SignOut(c echo.Context) error {
	h.provider.SignOut(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current authentication snapshot, triggering
// restoration on the first call after startup.
func (h *AuthHandler) Session(c echo.Context) error {
	st := h.provider.EnsureInitialized(c.Request().Context())
	return c.JSON(http.StatusOK, sessionResponse{
		Phase:         st.Phase,
		Identity:      st.Identity,
		SignInPending: h.provider.InFlight(),
	})
}

// SignInPage renders an area's sign-in entry point. It must render
// unconditionally; guarding it would redirect the guard to itself.
func SignInPage(area string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"area":   area,
			"submit": "/auth/sign-in",
		})
	}
}
