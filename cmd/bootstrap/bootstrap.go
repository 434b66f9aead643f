package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Syeddabbas07/chest-ray/config"
	deliveryHttp "github.com/Syeddabbas07/chest-ray/internal/delivery/http"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/handler"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/middleware"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/cache"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/classifier"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/database"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/messaging"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/storage"
	"github.com/Syeddabbas07/chest-ray/internal/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/jwt"
	"github.com/Syeddabbas07/chest-ray/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	Log          *logrus.Logger
	DB           *gorm.DB
	RedisClient  *redis.Client
	SessionStore cache.SessionStore
	Publisher    messaging.Publisher
	Server       *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{Log: setupLogger()}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	app.Log.Info("Configuration loaded successfully")

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db
	app.Log.Infof("Database connected successfully (%s)", cfg.DB.Driver)

	if err := app.initialize(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Migrate creates or updates the schema and exits.
func Migrate() error {
	log := setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db)

	log.Info("Database migrated successfully")
	return nil
}

// Admins opens the database for one-off account commands. It does not touch
// the session store, so it can run next to a live server.
func Admins() (usecase.AdminUsecase, func(), error) {
	log := setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	adminUsecase := usecase.NewAdminUsecase(
		db, log,
		repository.NewAccountRepository(),
		repository.NewPatientRepository(),
		repository.NewHealthWorkerRepository(),
		repository.NewExpertRepository(),
		repository.NewAdminRepository(),
		repository.NewXrayRepository(),
		repository.NewTreatmentRepository(),
		repository.NewReportRepository(),
		auditService,
	)
	return adminUsecase, func() { closeDB(db) }, nil
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	return logrus.StandardLogger()
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func (app *App) initialize() error {
	cfg := app.Config
	log := app.Log

	store, err := app.newSessionStore()
	if err != nil {
		return err
	}
	app.SessionStore = store

	images, err := newImageStore(cfg.Storage)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg.Events, cfg.Storage.Region, log)
	if err != nil {
		return err
	}
	app.Publisher = publisher

	imageClassifier := newClassifier(cfg.Classifier, log)

	views, err := view.NewRenderer(log)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.Session)
	customValidator := validator.NewValidator()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	patientRepo := repository.NewPatientRepository()
	healthWorkerRepo := repository.NewHealthWorkerRepository()
	expertRepo := repository.NewExpertRepository()
	adminRepo := repository.NewAdminRepository()
	xrayRepo := repository.NewXrayRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	reportRepo := repository.NewReportRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	db := app.DB
	auditService := service.NewAuditService(db, log, auditLogRepo)
	sessionService := service.NewSessionService(log, jwtService, store)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, accountRepo, patientRepo, sessionService, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, xrayRepo, treatmentRepo, reportRepo)
	healthWorkerUsecase := usecase.NewHealthWorkerUsecase(db, log, accountRepo, healthWorkerRepo, patientRepo, auditService)
	xrayUsecase := usecase.NewXrayUsecase(db, log, xrayRepo, patientRepo, healthWorkerRepo, images, imageClassifier, publisher, auditService)
	expertUsecase := usecase.NewExpertUsecase(db, log, expertRepo, patientRepo, xrayRepo, treatmentRepo, reportRepo, publisher, auditService)
	adminUsecase := usecase.NewAdminUsecase(db, log, accountRepo, patientRepo, healthWorkerRepo, expertRepo, adminRepo, xrayRepo, treatmentRepo, reportRepo, auditService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(log, sessionService, cfg.Session.CookieName, !cfg.IsDev())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, sessionMiddleware, views)
	patientHandler := handler.NewPatientHandler(patientUsecase, views)
	healthWorkerHandler := handler.NewHealthWorkerHandler(healthWorkerUsecase, customValidator, views)
	xrayHandler := handler.NewXrayHandler(xrayUsecase, views)
	expertHandler := handler.NewExpertHandler(expertUsecase, patientUsecase, customValidator, views)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator, views)

	router := deliveryHttp.NewRouter(authHandler, patientHandler, healthWorkerHandler, xrayHandler, expertHandler, adminHandler, sessionMiddleware)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Handler(log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

func (app *App) newSessionStore() (cache.SessionStore, error) {
	switch app.Config.Session.Store {
	case "", "leveldb":
		store, err := cache.NewLevelDBSessionStore(app.Config.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open session store: %w", err)
		}
		return store, nil
	case "redis":
		client, err := cache.NewRedisClient(app.Config.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = client
		app.Log.Info("Redis connected successfully")
		return cache.NewRedisSessionStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", app.Config.Session.Store)
	}
}

func newImageStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "", "local":
		return storage.NewLocalStore(cfg.UploadDir)
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:   cfg.Bucket,
			Prefix:   cfg.Prefix,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Driver)
	}
}

func newClassifier(cfg config.ClassifierConfig, log *logrus.Logger) classifier.Classifier {
	if cfg.URL == "" {
		log.Warn("CLASSIFIER_URL is not set, x-rays will be marked Unclear for expert review")
		return classifier.NewUnavailable()
	}
	return classifier.NewHTTP(cfg.URL, cfg.Timeout, cfg.Threshold)
}

func newPublisher(cfg config.EventsConfig, region string, log *logrus.Logger) (messaging.Publisher, error) {
	switch cfg.Driver {
	case "", "none":
		return messaging.NewLogPublisher(log), nil
	case "kafka":
		return messaging.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
	case "sqs":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return messaging.NewSQSPublisher(ctx, cfg.QueueName, region)
	default:
		return nil, fmt.Errorf("unsupported EVENTS_DRIVER %q", cfg.Driver)
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, session store, publisher)
func (app *App) Close() {
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Log.Errorf("Failed to close publisher: %v", err)
		}
	}

	// Closes the Redis client too when sessions live there.
	if app.SessionStore != nil {
		if err := app.SessionStore.Close(); err != nil {
			app.Log.Errorf("Failed to close session store: %v", err)
		}
	} else if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.DB != nil {
		closeDB(app.DB)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
