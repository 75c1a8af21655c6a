package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/analytics"
	"github.com/am3lue/ProjectManagementSystem/internal/component"
	"github.com/am3lue/ProjectManagementSystem/internal/core/events"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/identity"
	"github.com/am3lue/ProjectManagementSystem/internal/profile"
	"github.com/am3lue/ProjectManagementSystem/internal/project"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
	"github.com/am3lue/ProjectManagementSystem/internal/settings"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	"github.com/am3lue/ProjectManagementSystem/internal/transport/rest"
	"github.com/am3lue/ProjectManagementSystem/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests and serve the web pages`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sql.DB
	Stores   *storage.Scoped
	Sessions *session.Manager
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.L()

	stores, db, err := initStores(config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record stores: %w", err)
	}

	dir := directory.New(stores.Durable(), log)
	sessions := session.NewManager(stores, log)

	bus := events.NewEventBus(log)
	registerAuditSubscriber(bus, log)

	identityService := identity.NewService(dir, sessions, bus, log)
	profileService := profile.NewService(dir, sessions, log)
	componentService := component.NewService(stores.Durable(), sessions, log)
	projectService := project.NewService(stores.Durable(), log)
	analyticsService := analytics.NewService(projectService, componentService)
	settingsService := settings.NewService(stores.Durable(), log)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:               db,
		Sessions:         sessions,
		AuthHandler:      identity.NewHandler(identityService),
		ProfileHandler:   profile.NewHandler(profileService),
		ComponentHandler: component.NewHandler(componentService),
		ProjectHandler:   project.NewHandler(projectService),
		AnalyticsHandler: analytics.NewHandler(analyticsService),
		SettingsHandler:  settings.NewHandler(settingsService),
		StaticDir:        config.Server.StaticDir,
		Logger:           log,
	})

	return &Dependencies{
		Config:   config,
		DB:       db,
		Stores:   stores,
		Sessions: sessions,
		Router:   router,
		Logger:   log,
	}, nil
}

// initStores opens the durable backend and pairs it with the configured
// ephemeral one.
func initStores(cfg internal.StorageConfig) (*storage.Scoped, *sql.DB, error) {
	durable, err := initDurableStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := durable.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access underlying database: %w", err)
	}

	ephemeral, err := initEphemeralStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	return storage.NewScoped(durable, ephemeral), db, nil
}

func initDurableStore(cfg internal.StorageConfig) (*storage.SQLStore, error) {
	switch cfg.Driver {
	case "postgres":
		dbConn, err := sqlx.Connect("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open db connection: %w", err)
		}

		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

		// verify connection; close underlying *sql.DB on failure
		if err := dbConn.Ping(); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		return storage.OpenPostgres(dbConn.DB)
	case "sqlite":
		return storage.OpenSQLite(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func initEphemeralStore(cfg internal.StorageConfig) (storage.Store, error) {
	if cfg.Ephemeral != "redis" {
		return storage.NewMemoryStore(), nil
	}

	rs := storage.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rs, nil
}

// registerAuditSubscriber logs every identity event so sign-ups and
// sign-ins leave a trace even without an external audit sink.
func registerAuditSubscriber(bus *events.EventBus, log *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		log.Info("identity event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventUserRegistered, audit)
	bus.Subscribe(events.EventUserSignedIn, audit)
	bus.Subscribe(events.EventUserSignedOut, audit)
}
