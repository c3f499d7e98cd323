package redis

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stayware/hotel-console/internal/core/domain"
)

// The persisted session payload is a signed HS256 token whose claims
// mirror the Identity shape. The signature plus the structural checks in
// decodeSession are the defensive validation applied on every read: a
// payload that fails either is treated as absent, never as an error the
// caller must handle.

var errMalformedSession = errors.New("malformed session payload")

type sessionClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	TenantID    string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

func encodeSession(secret []byte, identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Role:        string(identity.Role),
		TenantID:    identity.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func decodeSession(secret []byte, token string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", errMalformedSession, err)
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", errMalformedSession, claims.Role)
	}

	identity := &domain.Identity{
		ID:          claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        role,
		TenantID:    claims.TenantID,
		// Only active identities are ever saved; current activity is the
		// Session Manager's re-validation concern, not the cache's.
		IsActive: true,
	}
	if !identity.Valid() {
		return nil, fmt.Errorf("%w: structurally incomplete identity", errMalformedSession)
	}
	return identity, nil
}
