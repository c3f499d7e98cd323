package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/api/metrics"
	"github.com/stayware/hotel-console/internal/core/domain"
)

// IdentityContextKey is the echo.Context key under which the guard stores
// the resolved identity snapshot for downstream handlers.
const IdentityContextKey = "identity"

// AuthSource resolves the current authentication state, triggering
// session restoration when it has not run yet.
type AuthSource interface {
	EnsureInitialized(ctx context.Context) domain.AuthState
}

// Area describes one protected console area. Each area has its own
// sign-in entry point; a guard only ever redirects to its own area's
// entry point, never the other's.
type Area struct {
	Name       string
	SignInPath string
	Roles      []domain.Role
}

func OperatorArea() Area {
	return Area{
		Name:       "operator",
		SignInPath: "/operator/sign-in",
		Roles:      []domain.Role{domain.RolePlatformOperator},
	}
}

func TenantArea() Area {
	return Area{
		Name:       "tenant",
		SignInPath: "/app/sign-in",
		Roles:      []domain.Role{domain.RoleTenantOwner, domain.RoleTenantStaff},
	}
}

// Guard gates an area on the resolved AuthState: Checking while the state
// is still resolving, Denied (redirect to the area's sign-in) when no
// identity is present or the role does not match, Authorized otherwise.
//
// Every denied request receives a redirect response, but the denial side
// effects (log line, metric) fire once per denial transition rather than
// on every re-evaluation. The area's own sign-in path is exempt so the
// guard can never redirect to itself.
func Guard(area Area, auth AuthSource, log zerolog.Logger) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(area.Roles))
	for _, r := range area.Roles {
		allowed[r] = struct{}{}
	}

	var mu sync.Mutex
	lastDenial := ""

	deny := func(reason, identityID string) {
		mu.Lock()
		defer mu.Unlock()
		key := reason + "|" + identityID
		if key == lastDenial {
			return
		}
		lastDenial = key
		metrics.GuardDenialsTotal.WithLabelValues(area.Name, reason).Inc()
		log.Info().
			Str("area", area.Name).
			Str("reason", reason).
			Str("identity_id", identityID).
			Msg("guard denied access")
	}
	authorize := func() {
		mu.Lock()
		lastDenial = ""
		mu.Unlock()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == area.SignInPath {
				return next(c)
			}

			st := auth.EnsureInitialized(c.Request().Context())
			switch st.Phase {
			case domain.PhaseUninitialized, domain.PhaseInitializing:
				// Still checking: render a holding response, never a
				// premature redirect.
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "checking"})
			case domain.PhaseError:
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": domain.MsgAuthUnavailable})
			}

			if st.Identity == nil {
				deny("unauthenticated", "")
				return c.Redirect(http.StatusFound, area.SignInPath)
			}
			if _, ok := allowed[st.Identity.Role]; !ok {
				deny("wrong_role", st.Identity.ID)
				return c.Redirect(http.StatusFound, area.SignInPath)
			}

			authorize()
			c.Set(IdentityContextKey, st.Identity)
			return next(c)
		}
	}
}
