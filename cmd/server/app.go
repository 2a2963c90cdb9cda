package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/realtime"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// application holds the wired dependency graph: stores over one shared
// *sql.DB, the token service, the realtime registry/broadcaster pair, and
// the HTTP handlers.
type application struct {
	cfg *config.Config
	db  *sql.DB
	log *slog.Logger

	registry  *realtime.Registry
	wsHandler *realtime.Handler

	authHandler        *api.AuthHandler
	taskHandler        *api.TaskHandler
	monthHandler       *api.MonthHandler
	userHandler        *api.UserHandler
	deliverableHandler *api.DeliverableHandler
	reporterHandler    *api.ReporterHandler
	daysOffHandler     *api.TeamDaysOffHandler
	authMiddleware     *middleware.AuthMiddleware
}

// newApplication connects to the database and wires every component.
func newApplication(cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := postgres.Open(context.Background(), cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db)
	taskStore := postgres.NewTaskStore(db)
	monthStore := postgres.NewMonthStore(db)
	deliverableStore := postgres.NewDeliverableStore(db)
	reporterStore := postgres.NewReporterStore(db)
	daysOffStore := postgres.NewTeamDaysOffStore(db)

	registry := realtime.NewRegistry(log)
	broadcaster := realtime.NewBroadcaster(registry, log)
	wsHandler := realtime.NewHandler(realtime.NewAuthGate(jwtService), registry, cfg.Realtime, log)

	return &application{
		cfg:       cfg,
		db:        db,
		log:       log,
		registry:  registry,
		wsHandler: wsHandler,

		authHandler:        api.NewAuthHandler(userStore, jwtService, auth.NewBcryptVerifier(), broadcaster),
		taskHandler:        api.NewTaskHandler(taskStore, monthStore, broadcaster),
		monthHandler:       api.NewMonthHandler(monthStore, broadcaster),
		userHandler:        api.NewUserHandler(userStore),
		deliverableHandler: api.NewDeliverableHandler(deliverableStore, broadcaster),
		reporterHandler:    api.NewReporterHandler(reporterStore, broadcaster),
		daysOffHandler:     api.NewTeamDaysOffHandler(daysOffStore, broadcaster),
		authMiddleware:     middleware.NewAuthMiddleware(jwtService),
	}, nil
}

// Close releases resources owned by the application.
func (a *application) Close() {
	a.registry.CloseAll()
	if err := a.db.Close(); err != nil {
		a.log.Warn("failed to close database", "error", err)
	}
}
