package storage

import (
	"fmt"

	"papernet/config"
	"papernet/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase öffnet die Datenbank für den konfigurierten Treiber.
// Bei SQLite wird die Datei angelegt, falls sie noch nicht existiert.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// EnsureSchema legt paper und paper_links an, falls sie fehlen. Keine Migrationen.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Paper{}, &models.PaperLink{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
