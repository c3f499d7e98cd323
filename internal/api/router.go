package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayware/hotel-console/internal/api/handler"
	"github.com/stayware/hotel-console/internal/api/middleware"
)

// RouterDeps carries everything the router wires together. The provider
// is the single constructed auth instance for this process; the router
// never builds a second one.
type RouterDeps struct {
	Provider *AuthProvider
	Plans    handler.PlanLookup
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("hotel_console"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Provider)
	modulesHandler := handler.NewModulesHandler(deps.Plans)

	// --- Session routes (never guarded) ---
	e.POST("/auth/sign-in", authHandler.SignIn)
	e.POST("/auth/sign-out", authHandler.SignOut)
	e.GET("/auth/session", authHandler.Session)

	// Sign-in entry points render unconditionally; each guard also exempts
	// its own path as a second line of defence against redirect loops.
	e.GET("/operator/sign-in", handler.SignInPage("operator"))
	e.GET("/app/sign-in", handler.SignInPage("tenant"))

	// --- Operator area ---
	operator := e.Group("/operator", middleware.Guard(middleware.OperatorArea(), deps.Provider, deps.Log))
	operator.GET("/overview", modulesHandler.Overview)
	operator.GET("/modules", modulesHandler.List)
	operator.GET("/modules/:module/permissions", modulesHandler.Permissions)

	// --- Tenant area ---
	tenant := e.Group("/app", middleware.Guard(middleware.TenantArea(), deps.Provider, deps.Log))
	tenant.GET("/overview", modulesHandler.Overview)
	tenant.GET("/modules", modulesHandler.List)
	tenant.GET("/modules/:module/permissions", modulesHandler.Permissions)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
