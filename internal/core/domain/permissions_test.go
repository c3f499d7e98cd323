package domain

import "testing"

func TestRoleAllows_NoEntryMeansAllFalse(t *testing.T) {
	// TenantStaff has no entry for financial at all.
	for _, action := range []Action{ActionRead, ActionWrite, ActionDelete, ActionAdmin} {
		if RoleAllows(RoleTenantStaff, ModuleFinancial, action) {
			t.Fatalf("expected %s on financial to be denied for staff", action)
		}
	}
}

func TestRoleAllows_PartialCapabilities(t *testing.T) {
	if !RoleAllows(RoleTenantStaff, ModuleReservations, ActionWrite) {
		t.Fatalf("staff should write reservations")
	}
	if RoleAllows(RoleTenantStaff, ModuleReservations, ActionDelete) {
		t.Fatalf("staff should not delete reservations")
	}
	if RoleAllows(RoleTenantStaff, ModuleGuests, ActionWrite) {
		t.Fatalf("staff should only read guests")
	}
}

func TestRoleAllows_UnknownRole(t *testing.T) {
	if RoleAllows(Role("superuser"), ModuleReservations, ActionRead) {
		t.Fatalf("unknown role must hold no capabilities")
	}
}

func TestCanAccessModule_PlanGatesRegardlessOfRole(t *testing.T) {
	// Basic excludes analytics; the owner's role permissions cannot
	// override the plan.
	if CanAccessModule(PlanBasic, RoleTenantOwner, ModuleAnalytics) {
		t.Fatalf("basic plan must gate analytics for every role")
	}
	if !CanAccessModule(PlanPremium, RoleTenantOwner, ModuleAnalytics) {
		t.Fatalf("premium owner should access analytics")
	}
}

func TestCanAccessModule_RoleGatesRegardlessOfPlan(t *testing.T) {
	if CanAccessModule(PlanPremium, RoleTenantStaff, ModuleFinancial) {
		t.Fatalf("staff must not see financial even on premium")
	}
	if CanAccessModule(PlanPremium, RoleGuest, ModuleReservations) {
		t.Fatalf("guest role holds nothing")
	}
}

func TestAccessibleModules_SortedIntersection(t *testing.T) {
	got := AccessibleModules(PlanBasic, RoleTenantStaff)
	want := []Module{ModuleGuests, ModuleHousekeeping, ModuleReservations}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAccessibleModules_UnknownPlan(t *testing.T) {
	if mods := AccessibleModules(Plan("enterprise"), RoleTenantOwner); len(mods) != 0 {
		t.Fatalf("unknown plan unlocks nothing, got %v", mods)
	}
}

func TestPlanLimits(t *testing.T) {
	seats, quota := PlanLimits(PlanBasic)
	if seats != 5 || quota != 1000 {
		t.Fatalf("unexpected basic limits: %d seats, %d quota", seats, quota)
	}
	if seats, _ := PlanLimits(Plan("nope")); seats != 0 {
		t.Fatalf("unknown plan should have zero limits")
	}
}
