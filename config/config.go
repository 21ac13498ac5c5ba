package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath   string `envconfig:"DB_PATH" default:"network.db"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"papernet"`

	HTTPPort    string `envconfig:"HTTP_PORT" default:"5000"`
	TemplateDir string `envconfig:"TEMPLATE_DIR" default:"templates"`
	StaticDir   string `envconfig:"STATIC_DIR" default:"static"`
	LogMode     string `envconfig:"LOG_MODE" default:"production"`

	// Backups laufen nur, wenn Zeitplan und Bucket gesetzt sind.
	BackupCronSchedule string `envconfig:"BACKUP_CRON_SCHEDULE"`
	BackupKeep         int    `envconfig:"BACKUP_KEEP" default:"4"`
	BackupBucket       string `envconfig:"BACKUP_S3_BUCKET"`
	BackupEndpoint     string `envconfig:"BACKUP_S3_ENDPOINT"`
	BackupAccessKey    string `envconfig:"BACKUP_S3_ACCESS_KEY"`
	BackupSecretKey    string `envconfig:"BACKUP_S3_SECRET_KEY"`
	BackupRegion       string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	BackupPrefix       string `envconfig:"BACKUP_S3_PREFIX" default:"backups/"`
}

// DSN gibt den Data Source Name für den konfigurierten Treiber zurück.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
	return c.DBPath + "?_foreign_keys=on"
}

// BackupEnabled meldet, ob geplante Backups laufen sollen.
func (c *Config) BackupEnabled() bool {
	return c.BackupCronSchedule != "" && c.BackupBucket != ""
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH must not be empty for driver %q", c.DBDriver)
		}
	case DriverPostgres:
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.BackupKeep < 1 {
		return fmt.Errorf("BACKUP_KEEP must be at least 1, got %d", c.BackupKeep)
	}
	return nil
}
