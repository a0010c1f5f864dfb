package repository

import (
	"career_agent_backend/internal/config"
	"career_agent_backend/pkg/database"
	"career_agent_backend/pkg/logger"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	return db
}
