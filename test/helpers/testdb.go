package helpers

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/database"
)

// SetTestConfig installs a self-contained config so tests never read
// config.yaml or the environment. Returns the config for tweaking.
func SetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.Port = 0
	cfg.Database.Path = filepath.Join(dir, "test.db")
	cfg.Database.BackupsDir = filepath.Join(dir, "backups")
	cfg.JWT.Secret = "test_secret"
	cfg.JWT.TTLHours = 1
	cfg.Reservations.DepositAmount = 10000
	cfg.Reset.TTLMinutes = 15
	cfg.Reset.CleanupIntervalMin = 30
	cfg.FrontendURL = "http://localhost:5173"

	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = nil })

	return cfg
}

// OpenTestDB opens a fresh migrated SQLite database under the config's path.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.GetConfig()
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
