package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"papernet/config"
	"papernet/storage"
)

// Einmaliges Backup der Graph-Datenbank, z.B. als Kubernetes-CronJob.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fehler beim Laden der Konfiguration: %v", err)
	}

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	if cfg.BackupBucket == "" {
		logging.Fatal("BACKUP_S3_BUCKET is required")
	}

	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}

	logging.Info("Starting backup", zap.String("driver", cfg.DBDriver), zap.String("bucket", cfg.BackupBucket))
	key, err := storage.NewBackup(cfg, db, s3Client, logging).Run(ctx)
	if err != nil {
		logging.Fatal("Backup failed", zap.Error(err))
	}
	logging.Info("Backup completed", zap.String("key", key), zap.Int("keep", cfg.BackupKeep))
}
