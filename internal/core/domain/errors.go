package domain

import "errors"

// Credential verification failures. The first three are deliberately
// collapsed into one uniform user-facing message at the API boundary so
// that responses cannot be used to enumerate accounts; the distinction is
// kept internally for audit logging.
var (
	ErrIdentityNotFound         = errors.New("identity not found")
	ErrIdentityInactive         = errors.New("identity inactive")
	ErrPasswordMismatch         = errors.New("password mismatch")
	ErrIdentityStoreUnavailable = errors.New("identity store unavailable")
)

// Guard outcomes. These never render inline error messages; a denial
// always results in a redirect to the area's sign-in entry point.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrWrongRole       = errors.New("role not permitted in this area")
)

// ErrMissingCredentials is the startup-fatal configuration error for an
// absent Identity Store endpoint or access key. It is distinct from every
// runtime authentication error above.
var ErrMissingCredentials = errors.New("identity store credentials not configured")

// Uniform user-facing messages (see the account-enumeration note above).
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgAuthUnavailable    = "authentication system unavailable"
)

// IsCredentialFailure reports whether err is a user-attributable sign-in
// failure, as opposed to an infrastructure fault.
func IsCredentialFailure(err error) bool {
	return errors.Is(err, ErrIdentityNotFound) ||
		errors.Is(err, ErrIdentityInactive) ||
		errors.Is(err, ErrPasswordMismatch)
}

// FailureReason returns a short stable label for audit logs and metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrIdentityNotFound):
		return "not_found"
	case errors.Is(err, ErrIdentityInactive):
		return "inactive"
	case errors.Is(err, ErrPasswordMismatch):
		return "bad_password"
	case errors.Is(err, ErrIdentityStoreUnavailable):
		return "infrastructure"
	default:
		return "unknown"
	}
}
