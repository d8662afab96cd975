package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/sukumar807253/sindhuja-colloction/internal/config"
	"github.com/sukumar807253/sindhuja-colloction/internal/repository"
	"github.com/sukumar807253/sindhuja-colloction/internal/service"
	"github.com/sukumar807253/sindhuja-colloction/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger.Info("Starting collection scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	scheduleRepo := repository.NewScheduleRepository(db)
	reportService := service.NewReportService(scheduleRepo, redisClient, logger, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// End-of-day tally snapshot: computes the day's collections, logs the
	// totals and leaves the result warm in the cache for the dashboard
	_, err = c.AddFunc(cfg.Scheduler.TallySpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		date := utils.Today()
		tally, err := reportService.DailyTally(ctx, date)
		if err != nil {
			logger.WithError(err).Error("daily tally snapshot failed")
			return
		}

		logger.WithFields(logrus.Fields{
			"date":        tally.Date,
			"collections": len(tally.Entries),
			"total":       tally.Total,
		}).Info("daily tally snapshot")
	})
	if err != nil {
		logger.Fatalf("Failed to schedule tally snapshot job: %v", err)
	}

	// Start the scheduler
	c.Start()
	logger.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	logger.Info("Scheduler stopped")
}
