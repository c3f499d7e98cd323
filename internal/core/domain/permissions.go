package domain

import "sort"

// Module is a named feature area subject to plan- and role-based gating.
type Module string

const (
	ModuleReservations Module = "reservations"
	ModuleHousekeeping Module = "housekeeping"
	ModuleMaintenance  Module = "maintenance"
	ModuleFinancial    Module = "financial"
	ModuleGuests       Module = "guests"
	ModuleAnalytics    Module = "analytics"
	ModuleSettings     Module = "settings"
)

// Plan is a subscription tier controlling which modules a tenant unlocks.
type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// Action is one of the four independent capabilities a role may hold on a
// module.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionAdmin  Action = "admin"
)

// Capabilities are the per-module booleans granted to a role.
type Capabilities struct {
	Read   bool
	Write  bool
	Delete bool
	Admin  bool
}

// PlanSpec describes what a plan tier unlocks. Static deploy-time
// configuration; never mutated at runtime by this core.
type PlanSpec struct {
	Modules     map[Module]struct{}
	MaxSeats    int
	APIQuotaDay int
}

var planSpecs = map[Plan]PlanSpec{
	PlanBasic: {
		Modules:     moduleSet(ModuleReservations, ModuleHousekeeping, ModuleGuests),
		MaxSeats:    5,
		APIQuotaDay: 1000,
	},
	PlanStandard: {
		Modules: moduleSet(ModuleReservations, ModuleHousekeeping, ModuleMaintenance,
			ModuleGuests, ModuleFinancial),
		MaxSeats:    20,
		APIQuotaDay: 10000,
	},
	PlanPremium: {
		Modules: moduleSet(ModuleReservations, ModuleHousekeeping, ModuleMaintenance,
			ModuleGuests, ModuleFinancial, ModuleAnalytics, ModuleSettings),
		MaxSeats:    100,
		APIQuotaDay: 100000,
	},
}

// rolePermissions maps each role to its per-module capabilities. A role
// with no entry for a module holds no capability on it at all.
var rolePermissions = map[Role]map[Module]Capabilities{
	RolePlatformOperator: {
		ModuleReservations: {Read: true, Write: true, Delete: true, Admin: true},
		ModuleHousekeeping: {Read: true, Write: true, Delete: true, Admin: true},
		ModuleMaintenance:  {Read: true, Write: true, Delete: true, Admin: true},
		ModuleFinancial:    {Read: true, Write: true, Delete: true, Admin: true},
		ModuleGuests:       {Read: true, Write: true, Delete: true, Admin: true},
		ModuleAnalytics:    {Read: true, Write: true, Delete: true, Admin: true},
		ModuleSettings:     {Read: true, Write: true, Delete: true, Admin: true},
	},
	RoleTenantOwner: {
		ModuleReservations: {Read: true, Write: true, Delete: true, Admin: true},
		ModuleHousekeeping: {Read: true, Write: true, Delete: true, Admin: true},
		ModuleMaintenance:  {Read: true, Write: true, Delete: true, Admin: true},
		ModuleFinancial:    {Read: true, Write: true, Delete: true, Admin: true},
		ModuleGuests:       {Read: true, Write: true, Delete: true, Admin: true},
		ModuleAnalytics:    {Read: true},
		ModuleSettings:     {Read: true, Write: true, Admin: true},
	},
	RoleTenantStaff: {
		ModuleReservations: {Read: true, Write: true},
		ModuleHousekeeping: {Read: true, Write: true},
		ModuleMaintenance:  {Read: true, Write: true},
		ModuleGuests:       {Read: true},
	},
	// Guests hold no module capabilities; the absence of entries below is
	// equivalent to all-false for every module.
	RoleGuest: {},
}

// PlanAllowsModule reports whether the plan tier unlocks the module.
func PlanAllowsModule(plan Plan, module Module) bool {
	spec, ok := planSpecs[plan]
	if !ok {
		return false
	}
	_, ok = spec.Modules[module]
	return ok
}

// PlanLimits returns the numeric limits for a plan. Unknown plans return
// the zero PlanSpec.
func PlanLimits(plan Plan) (maxSeats, apiQuotaDay int) {
	spec := planSpecs[plan]
	return spec.MaxSeats, spec.APIQuotaDay
}

// RoleAllows reports whether the role holds the given capability on the
// module. Missing entries at either level mean false.
func RoleAllows(role Role, module Module, action Action) bool {
	caps, ok := rolePermissions[role][module]
	if !ok {
		return false
	}
	switch action {
	case ActionRead:
		return caps.Read
	case ActionWrite:
		return caps.Write
	case ActionDelete:
		return caps.Delete
	case ActionAdmin:
		return caps.Admin
	}
	return false
}

// CanAccessModule gates module visibility: the tenant's plan must unlock
// the module AND the role must at least read it.
func CanAccessModule(plan Plan, role Role, module Module) bool {
	return PlanAllowsModule(plan, module) && RoleAllows(role, module, ActionRead)
}

// AccessibleModules returns, sorted, every module the plan/role pair can
// access. Pure and allocation-light; safe to call on every request.
func AccessibleModules(plan Plan, role Role) []Module {
	spec, ok := planSpecs[plan]
	if !ok {
		return nil
	}
	out := make([]Module, 0, len(spec.Modules))
	for m := range spec.Modules {
		if RoleAllows(role, m, ActionRead) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func moduleSet(mods ...Module) map[Module]struct{} {
	s := make(map[Module]struct{}, len(mods))
	for _, m := range mods {
		s[m] = struct{}{}
	}
	return s
}
