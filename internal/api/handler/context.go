package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayware/hotel-console/internal/api/middleware"
	"github.com/stayware/hotel-console/internal/core/domain"
)

// currentIdentity extracts the identity snapshot injected by the route
// guard. Its presence proves the guard ran; a handler reached without it
// is a routing mistake and fails closed with 401.
func currentIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityContextKey).(*domain.Identity)
	if identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return identity, nil
}
