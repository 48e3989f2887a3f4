package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pitlane/racecontrol/internal/adapter/postgres"
	appconfigrepo "github.com/pitlane/racecontrol/internal/adapter/postgres/appconfig"
	historyrepo "github.com/pitlane/racecontrol/internal/adapter/postgres/history"
	infringementrepo "github.com/pitlane/racecontrol/internal/adapter/postgres/infringement"
	sessionrepo "github.com/pitlane/racecontrol/internal/adapter/postgres/session"
	"github.com/pitlane/racecontrol/internal/config"
	"github.com/pitlane/racecontrol/internal/service/impex"
	"github.com/pitlane/racecontrol/internal/service/infringement"
	"github.com/pitlane/racecontrol/internal/service/penalty"
	"github.com/pitlane/racecontrol/internal/service/racesession"
	"github.com/pitlane/racecontrol/internal/service/settings"
	"github.com/pitlane/racecontrol/internal/transport/middleware"
	"github.com/pitlane/racecontrol/internal/transport/rest"
	"github.com/pitlane/racecontrol/internal/transport/ws"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to the database, wires repositories, services and the
// HTTP transport, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	infringements := infringementrepo.New(pool)
	sessions := sessionrepo.New(pool)
	history := historyrepo.New(pool)
	appConfig := appconfigrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	hub := ws.NewHub(logger)

	settingsSvc := settings.NewService(logger, appConfig, cfg.Warnings.ExpiryMinutes)
	if err := settingsSvc.Seed(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	sessionSvc := racesession.NewService(logger, sessions, infringements, history, txm, hub)
	infringementSvc := infringement.NewService(logger, infringements, history, sessionSvc, settingsSvc, txm, hub)
	penaltySvc := penalty.NewService(logger, infringements, history, sessionSvc, txm, hub)
	impexSvc := impex.NewService(logger, sessions, infringements, history, txm, hub, cfg.Export.Dir)

	rl := middleware.NewRateLimiter(time.Minute)
	defer rl.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Log:           logger,
		Infringements: rest.NewInfringementHandler(logger, infringementSvc),
		Penalties:     rest.NewPenaltyHandler(logger, penaltySvc),
		Sessions:      rest.NewSessionHandler(logger, sessionSvc, impexSvc),
		Settings:      rest.NewSettingsHandler(logger, settingsSvc),
		Health:        rest.NewHealthHandler(pool, BuildVersion()),
		Hub:           hub,
		CORS:          cfg.CORS,
		RateLimiter:   rl,
		RatePerMinute: cfg.Server.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
