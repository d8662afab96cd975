package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sukumar807253/sindhuja-colloction/internal/config"
	"github.com/sukumar807253/sindhuja-colloction/internal/handler"
	"github.com/sukumar807253/sindhuja-colloction/internal/repository"
	"github.com/sukumar807253/sindhuja-colloction/internal/service"
	"github.com/sukumar807253/sindhuja-colloction/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := initLogger(cfg)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	scheduleService := service.NewScheduleService(memberRepo, scheduleRepo, logger, cfg)
	collectionService := service.NewCollectionService(memberRepo, scheduleRepo, redisClient, logger)
	reportService := service.NewReportService(scheduleRepo, redisClient, logger, cfg)
	authService := service.NewAuthService(userRepo, logger)

	collectionHandler := handler.NewCollectionHandler(scheduleService, collectionService, reportService, authService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(collectionHandler, healthHandler, logger)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func initLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(collectionHandler *handler.CollectionHandler, healthHandler *handler.HealthHandler, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(logger))

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", collectionHandler.Login).Methods("POST")
	api.HandleFunc("/centers", collectionHandler.Centers).Methods("GET")
	api.HandleFunc("/members/{centerId}", collectionHandler.Members).Methods("GET")

	collections := api.PathPrefix("/collections").Subrouter()
	collections.HandleFunc("/members/{centerId}", collectionHandler.MemberWeekAmounts).Methods("GET")
	collections.HandleFunc("/schedule", collectionHandler.RegisterSchedule).Methods("POST")
	collections.HandleFunc("/schedule/{centerId}", collectionHandler.ClearSchedule).Methods("DELETE")
	collections.HandleFunc("/pay-batch", collectionHandler.PayBatch).Methods("POST")
	collections.HandleFunc("/daily", collectionHandler.DailyTally).Methods("GET")
	collections.HandleFunc("/unpaid", collectionHandler.UnpaidMembers).Methods("GET")

	return router
}
