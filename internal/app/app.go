package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"academy-service/internal/audit"
	"academy-service/internal/config"
	"academy-service/internal/course"
	"academy-service/internal/db"
	"academy-service/internal/health"
	"academy-service/internal/logger"
	"academy-service/internal/middleware"
	"academy-service/internal/student"
	"academy-service/internal/telemetry"
	"academy-service/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config    *config.Config
	router    chi.Router
	server    *http.Server
	db        *bun.DB
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
}

// New loads configuration from the environment and builds the application.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := logger.NewWithServiceContext(ServiceName, Version, cfg.Env)

	// Set as default logger so slog.Info() uses the same format
	slog.SetDefault(slogLogger)

	slogLogger.Info("config loaded", "env", cfg.Env, "driver", cfg.Database.Driver)

	return NewWithConfig(context.Background(), cfg, slogLogger)
}

// NewWithConfig connects to the database, runs migrations and wires every
// handler. Changes are attributed to audit.System.
func NewWithConfig(ctx context.Context, cfg *config.Config, slogLogger *slog.Logger) (*App, error) {
	slogLogger.Info("initializing application", "version", Version, "commit", GitCommit)

	tel, err := telemetry.Init(ctx, cfg.Telemetry.OTLPEndpoint, ServiceName, Version, cfg.Env, slogLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	database, err := db.New(cfg.Database)
	if err != nil {
		tel.Shutdown(ctx, slogLogger)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := tel.Metrics.Database.RegisterDB(database.DB, otel.Meter(ServiceName)); err != nil {
		slogLogger.Warn("failed to register database pool metrics", "error", err)
	}

	if err := db.RunMigrations(ctx, database, (*student.Student)(nil), (*course.Course)(nil)); err != nil {
		database.Close()
		tel.Shutdown(ctx, slogLogger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app := &App{
		config:    cfg,
		router:    chi.NewRouter(),
		db:        database,
		telemetry: tel,
		logger:    slogLogger,
	}

	httpMetrics := middleware.NewHTTPMetrics()

	app.router.Use(middleware.RequestID)
	app.router.Use(middleware.AccessLog(slogLogger))
	app.router.Use(httpMetrics.Middleware)
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	app.router.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	healthHandler := health.NewHandler(database, tel.Metrics.DependencyHealth(), slogLogger)
	healthHandler.RegisterRoutes(app.router)

	auditor := audit.System{}
	validate := validation.New()

	studentRepo := student.NewRepository(database, auditor, tel.Metrics.DB())
	studentService := student.NewService(database, studentRepo, tel.Metrics, slogLogger)
	studentHandler := student.NewHandler(studentService, validate, slogLogger)
	studentHandler.RegisterRoutes(app.router)

	courseRepo := course.NewRepository(database, auditor, tel.Metrics.DB())
	courseService := course.NewService(database, courseRepo, studentRepo, tel.Metrics, slogLogger)
	courseHandler := course.NewHandler(courseService, validate, slogLogger)
	courseHandler.RegisterRoutes(app.router)

	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      app.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	slogLogger.Info("application initialized successfully")

	return app, nil
}

func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Run() error {
	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains the HTTP server, then releases the database and flushes
// metrics.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}

	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}

	if err := a.telemetry.Shutdown(ctx, a.logger); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
