package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/wsdmailer/wsdmailer/config"
	"github.com/wsdmailer/wsdmailer/internal/database"
	"github.com/wsdmailer/wsdmailer/internal/domain"
	httpHandler "github.com/wsdmailer/wsdmailer/internal/http"
	"github.com/wsdmailer/wsdmailer/internal/http/middleware"
	"github.com/wsdmailer/wsdmailer/internal/migrations"
	"github.com/wsdmailer/wsdmailer/internal/repository"
	"github.com/wsdmailer/wsdmailer/internal/service"
	"github.com/wsdmailer/wsdmailer/pkg/cache"
	"github.com/wsdmailer/wsdmailer/pkg/logger"
	"github.com/wsdmailer/wsdmailer/pkg/ratelimiter"
	"github.com/wsdmailer/wsdmailer/pkg/tracing"
)

const (
	// CronRateLimit is the number of manual sync triggers accepted per client per window
	CronRateLimit       = 6
	CronRateLimitWindow = time.Minute
)

type shutdownContextKey struct{}

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB

	GetEmailRepository() domain.EmailRepository
	GetEmailEventRepository() domain.EmailEventRepository
	GetDomainRepository() domain.DomainRepository
	GetEmailSummaryRepository() domain.EmailSummaryRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sql.DB
	stopDBStats func()

	// Repositories
	emailRepo   domain.EmailRepository
	eventRepo   domain.EmailEventRepository
	domainRepo  domain.DomainRepository
	summaryRepo domain.EmailSummaryRepository
	settingRepo domain.SettingRepository

	// Services
	emailitEventService *service.EmailitEventService
	dashboardService    *service.DashboardService
	domainSyncService   *service.DomainSyncService
	syncScheduler       *service.DomainSyncScheduler

	statsCache *cache.TTLCache[*domain.DashboardStats]
	limiter    *ratelimiter.RateLimiter

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and the ingest metric views
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		if err := tracing.RegisterIngestViews(); err != nil {
			return fmt.Errorf("failed to register ingest views: %w", err)
		}

		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB opens the application database, creating it and its tables if needed
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	dbConfig := &a.config.Database
	password := dbConfig.Password
	maskedPassword := ""
	if len(password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
		dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.SSLMode, maskedPassword, dbConfig.DBName))

	if err := a.ensureDatabase(); err != nil {
		return err
	}

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, database.GetDSN(dbConfig))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	migrationManager := migrations.NewManager(a.logger)
	if err := migrationManager.RunMigrations(context.Background(), a.config, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	database.ApplyPoolSettings(db)

	if a.config.Tracing.Enabled {
		a.stopDBStats = ocsql.RecordStats(db, 5*time.Second)
	}

	a.db = db
	return nil
}

func (a *App) ensureDatabase() error {
	serverDB, err := sql.Open("postgres", database.GetPostgresDSN(&a.config.Database))
	if err != nil {
		return fmt.Errorf("failed to connect to postgres server: %w", err)
	}
	defer serverDB.Close()

	if err := database.EnsureDatabaseExists(serverDB, a.config.Database.DBName); err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	a.logger.Info("Database check completed")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.emailRepo = repository.NewEmailRepository(a.db)
	a.eventRepo = repository.NewEmailEventRepository(a.db)
	a.domainRepo = repository.NewDomainRepository(a.db)
	a.summaryRepo = repository.NewEmailSummaryRepository(a.db)
	a.settingRepo = repository.NewSQLSettingRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.emailRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	a.statsCache = cache.New[*domain.DashboardStats](time.Minute)
	a.limiter = ratelimiter.NewRateLimiter()
	a.limiter.SetPolicy(httpHandler.CronRateLimitNamespace, CronRateLimit, CronRateLimitWindow)

	a.emailitEventService = service.NewEmailitEventService(
		a.emailRepo,
		a.eventRepo,
		a.domainRepo,
		a.summaryRepo,
		a.logger,
		a.config.Ingest.RelinkEmailDomain,
	)

	a.dashboardService = service.NewDashboardService(
		a.emailRepo,
		a.eventRepo,
		a.domainRepo,
		a.summaryRepo,
		a.settingRepo,
		a.statsCache,
		a.logger,
	)

	a.domainSyncService = service.NewDomainSyncService(
		a.domainRepo,
		a.settingRepo,
		&http.Client{Timeout: a.config.Emailit.Timeout},
		a.config.Emailit.APIURL,
		a.config.Emailit.APIKey,
		a.logger,
	)

	if a.config.DomainSync.Enabled {
		a.syncScheduler = service.NewDomainSyncScheduler(a.domainSyncService, a.logger, a.config.DomainSync.Interval)
	}

	return nil
}

// InitHandlers initializes all HTTP handlers and routes
func (a *App) InitHandlers() error {
	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	webhookHandler, err := httpHandler.NewEmailitWebhookHandler(a.emailitEventService, a.config.Emailit.WebhookSecret, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize webhook handler: %w", err)
	}
	if !a.config.WebhookSignatureEnabled() {
		a.logger.Warn("EMAILIT_WEBHOOK_SECRET is not set, webhook signatures are not verified")
	}

	rootHandler := httpHandler.NewRootHandler(a.db, a.config.Version, a.logger)
	dashboardHandler := httpHandler.NewDashboardHandler(a.dashboardService, a.logger)
	cronHandler := httpHandler.NewCronHandler(a.domainSyncService, a.limiter, a.config.CronSecret, a.logger)

	rootHandler.RegisterRoutes(a.mux)
	webhookHandler.RegisterRoutes(a.mux)
	dashboardHandler.RegisterRoutes(a.mux)
	cronHandler.RegisterRoutes(a.mux)

	return nil
}

// Handler returns the mux wrapped in the middleware chain used by the server
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}

	return middleware.CORSMiddleware(handler)
}

// Start starts the HTTP server and the domain sync scheduler
func (a *App) Start() error {
	handler := a.Handler()

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("port", a.config.Server.Port).
		Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	if a.syncScheduler != nil {
		a.syncScheduler.Start(a.shutdownCtx)
	}

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	activeCount := a.getActiveRequestCount()
	a.logger.WithField("active_requests", activeCount).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	serverShutdownDone := make(chan error, 1)
	go func() {
		a.logger.WithField("timeout", shutdownTimeout).Info("Starting HTTP server shutdown")
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	var shutdownErr error
	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	if shutdownErr == nil {
		select {
		case <-requestsDone:
		case <-time.After(2 * time.Second):
			if active := a.getActiveRequestCount(); active > 0 {
				a.logger.WithField("active_requests", active).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	if cleanupErr := a.cleanupResources(); cleanupErr != nil {
		a.logger.WithField("error", cleanupErr.Error()).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = cleanupErr
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

// cleanupResources stops background workers and closes the database
func (a *App) cleanupResources() error {
	a.logger.Info("Cleaning up resources...")

	if a.syncScheduler != nil {
		a.syncScheduler.Stop()
	}
	if a.statsCache != nil {
		a.statsCache.Stop()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.stopDBStats != nil {
		a.stopDBStats()
	}

	if a.db != nil {
		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created.
// Returns false if the context expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting wsdmailer application")

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetEmailRepository() domain.EmailRepository {
	return a.emailRepo
}

func (a *App) GetEmailEventRepository() domain.EmailEventRepository {
	return a.eventRepo
}

func (a *App) GetDomainRepository() domain.DomainRepository {
	return a.domainRepo
}

func (a *App) GetEmailSummaryRepository() domain.EmailSummaryRepository {
	return a.summaryRepo
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the context cancelled when shutdown begins
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks in-flight requests and rejects new ones once shutdown starts
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		ctx := context.WithValue(r.Context(), shutdownContextKey{}, a.shutdownCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var _ AppInterface = (*App)(nil)
