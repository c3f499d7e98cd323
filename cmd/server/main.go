package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stayware/hotel-console/internal/api"
	"github.com/stayware/hotel-console/internal/core/domain"
	"github.com/stayware/hotel-console/internal/core/service"
	"github.com/stayware/hotel-console/internal/infrastructure/config"
	mongodb "github.com/stayware/hotel-console/internal/infrastructure/db/mongo"
	redisdb "github.com/stayware/hotel-console/internal/infrastructure/db/redis"
	"github.com/stayware/hotel-console/internal/infrastructure/queue"
	"github.com/stayware/hotel-console/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// A missing Identity Store endpoint or access key is configuration,
		// not authentication: fail fast and say so plainly.
		log := logger.Init(logger.Options{Level: "info"})
		if errors.Is(err, domain.ErrMissingCredentials) {
			log.Fatal().Err(err).Msg("startup configuration incomplete")
		}
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Identity Store ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:       cfg.IdentityStore.URI,
		Database:  cfg.IdentityStore.Database,
		AccessKey: cfg.IdentityStore.AccessKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("identity store unreachable")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()
	identityStore := mongodb.NewIdentityRepository(db)

	// --- Session cache ---
	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session cache unreachable")
	}
	defer redisClient.Close()
	sessionStore := redisdb.NewSessionStore(redisClient, cfg.SessionSecret, cfg.ConsoleID, logger.Component("session_store"))

	// --- Audit pipeline ---
	auditService := service.NewAuditService(identityStore, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(0, auditService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	// --- Auth core: one verifier, one manager, one provider ---
	verifier := service.NewCredentialVerifier(identityStore, dispatcher, 0, logger.Component("verifier"))
	manager := service.NewSessionManager(verifier, sessionStore, identityStore, dispatcher, logger.Component("session_manager"))
	provider := api.NewAuthProvider(manager)
	defer provider.Close()

	e := api.NewRouter(api.RouterDeps{
		Provider: provider,
		Plans:    planLookup(cfg),
		Mongo:    db,
		Redis:    redisClient,
		Log:      logger.Component("api"),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("console_id", cfg.ConsoleID).Msg("hotel console started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

// planLookup builds the deploy-time tenant→plan table. Unknown tenants
// fall back to the basic tier, never to more access.
func planLookup(cfg *config.Config) func(tenantID string) domain.Plan {
	plans := make(map[string]domain.Plan, len(cfg.TenantPlans))
	for tenant, tier := range cfg.TenantPlans {
		plans[tenant] = domain.Plan(tier)
	}
	return func(tenantID string) domain.Plan {
		if plan, ok := plans[tenantID]; ok {
			return plan
		}
		return domain.PlanBasic
	}
}
