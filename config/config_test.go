package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "network.db", cfg.DBPath)
	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, "network.db?_foreign_keys=on", cfg.DSN())
	assert.False(t, cfg.BackupEnabled())
}

func TestLoadPostgres(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "paper")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "graph")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db user=paper password=secret dbname=graph port=5432 sslmode=disable", cfg.DSN())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown DB_DRIVER")
}

func TestLoadPostgresRequiresUser(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_USER")
}

func TestBackupEnabled(t *testing.T) {
	cfg := &Config{BackupCronSchedule: "0 3 * * *"}
	assert.False(t, cfg.BackupEnabled())

	cfg.BackupBucket = "papers"
	assert.True(t, cfg.BackupEnabled())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
