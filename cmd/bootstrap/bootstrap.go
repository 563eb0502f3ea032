package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dentalcare-backend/config"
	deliveryHttp "dentalcare-backend/internal/delivery/http"
	"dentalcare-backend/internal/delivery/http/handler"
	"dentalcare-backend/internal/delivery/http/middleware"
	"dentalcare-backend/internal/infrastructure/cache"
	"dentalcare-backend/internal/infrastructure/database"
	"dentalcare-backend/internal/infrastructure/googlecal"
	"dentalcare-backend/internal/repository"
	"dentalcare-backend/internal/service"
	"dentalcare-backend/internal/usecase"
	"dentalcare-backend/pkg/jwt"
	"dentalcare-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config         *config.Config
	DB             *gorm.DB
	RedisClient    *redis.Client
	Server         *http.Server
	SyncDispatcher *service.CalendarSyncDispatcher
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server, app.SyncDispatcher = initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.CalendarSyncDispatcher) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	appointmentTypeRepo := repository.NewAppointmentTypeRepository()
	patientRepo := repository.NewPatientRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	userRepo := repository.NewUserRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	oauthConfig := googlecal.NewOAuthConfig(cfg.Google)
	calendarClient := googlecal.NewClient(oauthConfig)
	syncDispatcher := service.NewCalendarSyncDispatcher(db, log, calendarClient, appointmentRepo, auditService, cfg.Google.SyncTimeout)
	rulesCache := cache.NewDoctorRulesCache(redisClient, log)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, userRepo, auditService, rulesCache)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, appointmentTypeRepo, auditService, syncDispatcher, rulesCache)
	appointmentTypeUsecase := usecase.NewAppointmentTypeUsecase(db, log, appointmentTypeRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	calendarViewUsecase := usecase.NewCalendarViewUsecase(db, log, appointmentRepo, doctorRepo)
	calendarLinkUsecase := usecase.NewCalendarLinkUsecase(db, log, oauthConfig, doctorUsecase)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	appointmentTypeHandler := handler.NewAppointmentTypeHandler(appointmentTypeUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	calendarHandler := handler.NewCalendarHandler(calendarViewUsecase)
	googleHandler := handler.NewGoogleHandler(calendarLinkUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		doctorHandler,
		appointmentHandler,
		appointmentTypeHandler,
		patientHandler,
		calendarHandler,
		googleHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, syncDispatcher
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Let in-flight calendar syncs land before connections close
	if app.SyncDispatcher != nil {
		app.SyncDispatcher.Stop()
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
