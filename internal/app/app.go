package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"trunkreport/internal/config"
	apierrors "trunkreport/internal/errors"
	"trunkreport/internal/files"
	"trunkreport/internal/infrastructure"
	custommw "trunkreport/internal/middleware"
	"trunkreport/internal/pipeline"
	"trunkreport/internal/services"
	transport "trunkreport/internal/transport/http"
)

// Build information, overridden at link time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Application wires configuration, services, and the HTTP server together.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	ReportService *services.ReportService
	HealthService *services.HealthService
	Metrics       *custommw.Metrics
	WebFS         fs.FS

	closeLogger func() error
}

// NewApplication loads configuration and builds a fully wired application.
// webFS holds the embedded upload page assets.
func NewApplication(webFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, closeLogger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	paths, err := cfg.Paths.Resolve()
	if err != nil {
		closeLogger()
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	cfg.Paths = paths
	if err := paths.EnsureDirectories(); err != nil {
		closeLogger()
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	app := &Application{
		Config:      cfg,
		Logger:      logger,
		WebFS:       webFS,
		closeLogger: closeLogger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeServices() {
	artifacts := files.NewManager(a.Config.Paths.ProcessedDir, a.Logger)
	a.ReportService = services.NewReportService(pipeline.DefaultConfig(), artifacts, a.Logger)
	a.HealthService = services.NewHealthService(Version, BuildTime, artifacts, a.Logger)
	a.Metrics = custommw.NewMetrics()
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	// Metrics endpoint stays outside the middleware group so scrapes are
	// never rate limited or logged per request.
	r.Handle("/metrics", a.Metrics.Endpoint())

	r.Group(func(r chi.Router) {
		r.Use(a.Metrics.Handler)
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(custommw.CORS(custommw.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
			}))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
		a.setupHTMLRoutes(r)
	})

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		healthHandler := transport.NewHealthHandler(a.HealthService, a.Logger)
		r.Group(func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.ReadTimeout, a.Logger))
			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/version", healthHandler.Version)
		})

		// Uploads get the write timeout since processing large workbooks
		// can outlast the read timeout.
		reportHandler := transport.NewReportHandler(
			a.ReportService,
			a.Logger,
			errorHandler,
			a.Config.Upload.MaxSizeBytes,
			a.Metrics.RecordUpload,
		)
		r.Group(func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.WriteTimeout, a.Logger))
			r.Mount("/reports", reportHandler.Routes())
		})

		r.NotFound(errorHandler.NotFound)
	})
}

func (a *Application) setupHTMLRoutes(r chi.Router) {
	r.Get("/", transport.ServeUploadPage(a.Config.Paths.WebDir, a.WebFS))
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving. The server runs in a background goroutine; a listen
// failure cancels the supplied context through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "server listening",
		slog.String("address", a.Server.Addr),
		slog.String("processed_dir", a.Config.Paths.ProcessedDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop shuts the server down gracefully within the configured timeout.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.Logger.Info("shutdown complete")

	if a.closeLogger != nil {
		if err := a.closeLogger(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}
	return nil
}

// Run starts the application and blocks until an interrupt arrives or the
// server fails, then performs a graceful shutdown.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.Info("received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		// Give the failed listener's log line a moment to flush.
		time.Sleep(100 * time.Millisecond)
	}

	return a.Stop(context.Background())
}
