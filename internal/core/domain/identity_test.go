package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"platform_operator", "tenant_owner", "tenant_staff", "guest"} {
		if _, ok := ParseRole(s); !ok {
			t.Fatalf("expected %q to parse", s)
		}
	}
	if _, ok := ParseRole("admin"); ok {
		t.Fatalf("ad hoc role strings must not parse")
	}
}

func TestIdentityValid(t *testing.T) {
	cases := []struct {
		name     string
		identity Identity
		want     bool
	}{
		{"operator", Identity{ID: "1", Email: "op@example.com", Role: RolePlatformOperator}, true},
		{"owner with tenant", Identity{ID: "2", Email: "o@example.com", Role: RoleTenantOwner, TenantID: "t1"}, true},
		{"owner without tenant", Identity{ID: "3", Email: "o@example.com", Role: RoleTenantOwner}, false},
		{"operator with tenant", Identity{ID: "4", Email: "op@example.com", Role: RolePlatformOperator, TenantID: "t1"}, false},
		{"missing id", Identity{Email: "x@example.com", Role: RoleGuest}, false},
		{"missing email", Identity{ID: "5", Role: RoleGuest}, false},
		{"bogus role", Identity{ID: "6", Email: "x@example.com", Role: "root"}, false},
	}
	for _, tc := range cases {
		if got := tc.identity.Valid(); got != tc.want {
			t.Fatalf("%s: expected Valid()=%v", tc.name, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Admin@Example.COM "); got != "admin@example.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
