package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"papernet/config"
	"papernet/services"
	"papernet/storage"
)

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logging, err := newLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	if cfg.LogMode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Connected to database", zap.String("driver", cfg.DBDriver))

	logging.Info("Ensuring database schema...")
	if err := storage.EnsureSchema(db); err != nil {
		logging.Fatal("Schema setup failed", zap.Error(err))
	}

	papers := services.NewPaperService(db, logging)
	prometheus.MustRegister(newGraphCollector(papers, logging))

	router := newRouter(cfg, papers, logging)

	if cfg.BackupEnabled() {
		scheduler, err := startBackupCron(cfg, db, logging)
		if err != nil {
			logging.Fatal("Backup scheduler setup failed", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func startBackupCron(cfg *config.Config, db *gorm.DB, logging *zap.Logger) (*cron.Cron, error) {
	s3Client, err := storage.NewS3Client(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	backup := storage.NewBackup(cfg, db, s3Client, logging)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.BackupCronSchedule, func() {
		logging.Info("Running scheduled backup...")
		key, err := backup.Run(context.Background())
		if err != nil {
			backupsCounter.WithLabelValues("error").Inc()
			logging.Error("Scheduled backup failed", zap.Error(err))
			return
		}
		backupsCounter.WithLabelValues("ok").Inc()
		logging.Info("Scheduled backup completed", zap.String("key", key))
	})
	if err != nil {
		return nil, err
	}
	scheduler.Start()
	logging.Info("Backup scheduler started", zap.String("schedule", cfg.BackupCronSchedule))
	return scheduler, nil
}
