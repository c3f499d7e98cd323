package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stayware/hotel-console/internal/core/domain"
)

// PlanLookup resolves the subscription plan for a tenant. Plan data is a
// deploy-time collaborator concern; the handlers only evaluate against
// whatever it returns.
type PlanLookup func(tenantID string) domain.Plan

// ModulesHandler exposes module gating decisions to the navigation UI.
// Consumers receive module names and booleans only, never raw role or
// plan internals.
type ModulesHandler struct {
	plans PlanLookup
}

func NewModulesHandler(plans PlanLookup) *ModulesHandler {
	return &ModulesHandler{plans: plans}
}

// resolvePlan picks the plan the identity is evaluated against. The
// platform operator is not bound by any tenant subscription and sees the
// full module set.
func (h *ModulesHandler) resolvePlan(identity *domain.Identity) domain.Plan {
	if identity.Role == domain.RolePlatformOperator {
		return domain.PlanPremium
	}
	return h.plans(identity.TenantID)
}

// List returns every module the signed-in identity can access.
func (h *ModulesHandler) List(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	modules := domain.AccessibleModules(h.resolvePlan(identity), identity.Role)
	return c.JSON(http.StatusOK, map[string]any{"modules": modules})
}

type modulePermissionsResponse struct {
	Module domain.Module `json:"module"`
	Read   bool          `json:"read"`
	Write  bool          `json:"write"`
	Delete bool          `json:"delete"`
	Admin  bool          `json:"admin"`
}

// Permissions returns the four capability booleans for one module. A
// module the plan does not unlock is all-false regardless of role.
func (h *ModulesHandler) Permissions(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	module := domain.Module(c.Param("module"))
	plan := h.resolvePlan(identity)
	unlocked := domain.PlanAllowsModule(plan, module)

	return c.JSON(http.StatusOK, modulePermissionsResponse{
		Module: module,
		Read:   unlocked && domain.RoleAllows(identity.Role, module, domain.ActionRead),
		Write:  unlocked && domain.RoleAllows(identity.Role, module, domain.ActionWrite),
		Delete: unlocked && domain.RoleAllows(identity.Role, module, domain.ActionDelete),
		Admin:  unlocked && domain.RoleAllows(identity.Role, module, domain.ActionAdmin),
	})
}

// Overview returns the identity snapshot plus its accessible modules —
// the first payload each console area loads after sign-in.
func (h *ModulesHandler) Overview(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"identity": identity,
		"modules":  domain.AccessibleModules(h.resolvePlan(identity), identity.Role),
	})
}
