package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-medical-scheduling/config"
	deliveryHttp "go-medical-scheduling/internal/delivery/http"
	"go-medical-scheduling/internal/delivery/http/handler"
	"go-medical-scheduling/internal/delivery/http/middleware"
	"go-medical-scheduling/internal/infrastructure/cache"
	"go-medical-scheduling/internal/infrastructure/database"
	"go-medical-scheduling/internal/infrastructure/lock"
	"go-medical-scheduling/internal/observability/metrics"
	"go-medical-scheduling/internal/repository"
	"go-medical-scheduling/internal/service"
	"go-medical-scheduling/internal/usecase"
	"go-medical-scheduling/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Usecases is the application surface shared by the HTTP server and the CLI
type Usecases struct {
	Patients      usecase.PatientUsecase
	Practitioners usecase.PractitionerUsecase
	Appointments  usecase.AppointmentUsecase
	HealthRecords usecase.HealthRecordUsecase
	AuditLogs     usecase.AuditLogUsecase
}

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Registry    *prometheus.Registry
	Usecases    *Usecases
	Server      *http.Server
}

// New loads configuration from the environment and wires the application
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(ctx, cfg, setupLogger(cfg.App))
}

// NewWithConfig wires the application from an already loaded configuration
func NewWithConfig(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}
	log.Info("Configuration loaded successfully")

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// Initialize database
	if cfg.Storage.Driver == config.StoragePostgres {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.TimeZone, log)
		if err != nil {
			return nil, err
		}
		app.DB = db
		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, err
		}
		log.Info("Database connected successfully")
	}

	// Initialize Redis
	if cfg.Storage.Driver == config.StorageRedis || cfg.Lock.Driver == config.LockRedis {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		log.Info("Redis connected successfully")
	}

	stores, err := repository.NewStores(cfg.Storage, app.DB, app.RedisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	log.Infof("Storage driver: %s", cfg.Storage.Driver)

	slotPolicy, err := service.NewSlotPolicy(cfg.Scheduling, location)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app.Usecases = initializeUsecases(cfg, log, stores, app.RedisClient, slotPolicy, location, metrics.NewAllocatorMetrics(app.Registry))
	app.Server = initializeServer(cfg, log, app.Usecases, location, app.Registry)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func initializeUsecases(
	cfg *config.Config,
	log *logrus.Logger,
	stores *repository.Stores,
	redisClient *redis.Client,
	slotPolicy service.SlotPolicy,
	location *time.Location,
	m *metrics.AllocatorMetrics,
) *Usecases {
	// One locker guards every registry and the allocator
	var locker lock.Locker
	if cfg.Lock.Driver == config.LockRedis {
		locker = lock.NewRedisLocker(redisClient, cfg.Lock.Key, cfg.Lock.TTL, cfg.Lock.RetryInterval)
	} else {
		locker = lock.NewLocalLocker()
	}

	journal := service.NewNoopIntentJournal()
	if cfg.Scheduling.JournalEnabled {
		journal = service.NewIntentJournal(log, stores.Intents)
	}
	audit := service.NewAuditService(log, stores.AuditLogs)

	patients := usecase.NewPatientUsecase(log, locker, m, stores.Patients, audit)
	practitioners := usecase.NewPractitionerUsecase(log, locker, m, stores.Practitioners, slotPolicy, audit)

	return &Usecases{
		Patients:      patients,
		Practitioners: practitioners,
		Appointments:  usecase.NewAppointmentUsecase(log, locker, m, stores.Appointments, stores.Patients, stores.Practitioners, journal, audit, location),
		HealthRecords: usecase.NewHealthRecordUsecase(log, locker, m, stores.HealthRecords, stores.Patients, stores.Practitioners, audit),
		AuditLogs:     usecase.NewAuditLogUsecase(log, stores.AuditLogs),
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, uc *Usecases, location *time.Location, registry *prometheus.Registry) *http.Server {
	customValidator := validator.NewValidator()

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(uc.Patients, uc.Appointments, uc.HealthRecords, customValidator)
	practitionerHandler := handler.NewPractitionerHandler(uc.Practitioners, uc.Appointments, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(uc.Appointments, customValidator, location)
	healthRecordHandler := handler.NewHealthRecordHandler(uc.HealthRecords, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(uc.AuditLogs)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware("*")
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, practitionerHandler, appointmentHandler, healthRecordHandler, auditLogHandler,
		corsMiddleware, loggingMiddleware, registry)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Reconcile replays intents left behind by an interrupted process
func (app *App) Reconcile(ctx context.Context) error {
	result, err := app.Usecases.Appointments.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile intents: %w", err)
	}
	if result.Pending > 0 {
		app.Log.Warnf("Recovered from interrupted writes: pending=%d, repaired=%d", result.Pending, result.Repaired)
	}
	return nil
}

// Run reconciles, starts the HTTP server and blocks until shutdown. The app
// is closed on every return path.
func (app *App) Run(ctx context.Context) error {
	if err := app.Reconcile(ctx); err != nil {
		app.Close()
		if ctx.Err() != nil {
			app.Log.Info("Shutdown requested before the server started")
			return nil
		}
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return app.waitForShutdown(ctx, errCh)
}

// waitForShutdown blocks until an interrupt signal, ctx cancellation or a
// listener failure
func (app *App) waitForShutdown(ctx context.Context, errCh <-chan error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		app.Log.Errorf("Failed to start server: %v", runErr)
	}

	app.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return runErr
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
