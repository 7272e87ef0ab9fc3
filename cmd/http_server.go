package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/interview-dashboard/api"
	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/admin"
	"github.com/frahmantamala/interview-dashboard/internal/auth"
	"github.com/frahmantamala/interview-dashboard/internal/candidate"
	"github.com/frahmantamala/interview-dashboard/internal/core/events"
	"github.com/frahmantamala/interview-dashboard/internal/dashboard"
	"github.com/frahmantamala/interview-dashboard/internal/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/feedback"
	"github.com/frahmantamala/interview-dashboard/internal/schedule"
	"github.com/frahmantamala/interview-dashboard/internal/scope"
	"github.com/frahmantamala/interview-dashboard/internal/session"
	"github.com/frahmantamala/interview-dashboard/internal/storage"
	"github.com/frahmantamala/interview-dashboard/internal/storage/memory"
	storagePostgres "github.com/frahmantamala/interview-dashboard/internal/storage/postgres"
	"github.com/frahmantamala/interview-dashboard/internal/telemetry"
	"github.com/frahmantamala/interview-dashboard/internal/transport"
	"github.com/frahmantamala/interview-dashboard/internal/transport/rest"
	"github.com/frahmantamala/interview-dashboard/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	storageDatabase = "database"
	storageMemory   = "memory"
)

var storageBackend string

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that serves the dashboard page models`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

func init() {
	httpServerCmd.Flags().StringVar(&storageBackend, "storage", storageDatabase, "session storage backend: database or memory")
}

type Dependencies struct {
	Config   *internal.Config
	Gorm     *gorm.DB
	DB       *sqlx.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	deps, err := initializeDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close()

	shutdownTelemetry := telemetry.Setup(ctx, deps.Config.Observability.Tracing, deps.Logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			deps.Logger.Error("Telemetry shutdown error", "error", err)
		}
	}()

	if err := setupRoutes(ctx, deps); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "storage", storageBackend)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed to start: %w", err)
		}
	}

	deps.Logger.Info("Server stopped")
	return nil
}

func setupRoutes(ctx context.Context, deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger

	if _, err := api.Load(ctx); err != nil {
		return err
	}

	var repo storage.RepositoryAPI
	if deps.Gorm != nil {
		repo = storagePostgres.NewStorageRepository(deps.Gorm)
	} else {
		repo = memory.NewStorageRepository()
	}

	events.NewAuditHandler(lg).RegisterEventHandlers(deps.EventBus)

	client := dummyjson.NewClient(dummyjson.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, lg)

	authService := auth.NewService(client, session.NewStore(repo, lg), lg, auth.WithPublisher(deps.EventBus))
	feedbackService := feedback.NewService(client, deps.EventBus, lg)
	base := transport.NewBaseHandler(lg)

	rest.RegisterAllRoutes(deps.Router, rest.Routes{
		Config:        cfg,
		Logger:        lg,
		Scope:         scope.NewManager(cfg.Security.ScopeSecret, cfg.Security.GetCookieName(), cfg.Security.CookieSecure, lg).Middleware,
		Sessions:      authService,
		Authorization: access.NewAuthorization(lg),
		OpenAPI:       api.Document,
		Health:        rest.NewHealthHandler(base, deps.DB),
		Auth:          auth.NewHandler(base, authService),
		Dashboard:     dashboard.NewHandler(base, dashboard.NewService(dashboard.Sample())),
		Candidate: candidate.NewHandler(base,
			candidate.NewService(client, lg),
			schedule.NewService(client, lg),
			feedbackService),
		Feedback: feedback.NewHandler(base, feedbackService),
		Admin:    admin.NewHandler(base, admin.NewService(client, deps.EventBus, lg)),
	})
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	deps := &Dependencies{
		Config:   config,
		Router:   chi.NewRouter(),
		EventBus: events.NewEventBus(lg),
		Logger:   lg,
	}

	switch storageBackend {
	case storageMemory:
		lg.Warn("sessions are kept in memory and lost on restart")
	case storageDatabase:
		gdb, err := initDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		deps.Gorm = gdb
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		deps.DB = sqlx.NewDb(sqlDB, sqlxDriverName(config.Database.Driver))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", storageBackend)
	}

	return deps, nil
}

func (d *Dependencies) close() {
	if d.DB == nil {
		return
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func sqlxDriverName(driver string) string {
	if driver == internal.DriverPostgres {
		return "pgx"
	}
	return "sqlite3"
}

// initDB opens the session database through gorm and applies the pool settings.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverPostgres:
		connConfig, err := pgx.ParseConfig(cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to parse database url: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDB(*connConfig)})
	case internal.DriverSQLite:
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return gdb, nil
}
