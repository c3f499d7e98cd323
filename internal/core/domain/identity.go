package domain

import (
	"strings"
	"time"
)

// Role classifies an authenticated principal. Exactly one role per identity.
type Role string

const (
	RolePlatformOperator Role = "platform_operator"
	RoleTenantOwner      Role = "tenant_owner"
	RoleTenantStaff      Role = "tenant_staff"
	RoleGuest            Role = "guest"
)

// ParseRole maps a stored role string onto the closed enumeration.
// Unknown values are rejected so that duck-typed role strings can never
// leak past the domain boundary.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePlatformOperator, RoleTenantOwner, RoleTenantStaff, RoleGuest:
		return Role(s), true
	}
	return "", false
}

// IsTenantScoped reports whether the role is bound to a single tenant.
func (r Role) IsTenantScoped() bool {
	return r == RoleTenantOwner || r == RoleTenantStaff
}

// Identity is a verified principal.
type Identity struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        Role      `json:"role"`
	TenantID    string    `json:"tenant_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	LastLoginAt time.Time `json:"last_login_at,omitempty"`
}

// Valid reports whether the identity is structurally complete: required
// fields present, role in the closed set, and the tenant association
// consistent with the role (tenant roles carry a tenant, the platform
// operator never does).
func (i Identity) Valid() bool {
	if i.ID == "" || i.Email == "" {
		return false
	}
	if _, ok := ParseRole(string(i.Role)); !ok {
		return false
	}
	if i.Role.IsTenantScoped() && i.TenantID == "" {
		return false
	}
	if i.Role == RolePlatformOperator && i.TenantID != "" {
		return false
	}
	return true
}

// NormalizeEmail lower-cases and trims an email for lookup. Emails are
// unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
