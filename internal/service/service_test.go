package service

import (
	"career_agent_backend/internal/config"
	"career_agent_backend/internal/repository"
	"career_agent_backend/pkg/database"
	"career_agent_backend/pkg/logger"
	"context"
	"path/filepath"
	"testing"
	"time"

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

// fakeCompletion 按提示词内容分发固定响应
type fakeCompletion struct {
	fn func(system, prompt string) (string, error)
}

func (f *fakeCompletion) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f.fn(system, prompt)
}

func newFakeAI(fn func(system, prompt string) (string, error)) *AIService {
	return &AIService{
		Client:  &fakeCompletion{fn: fn},
		Timeout: 5 * time.Second,
	}
}

// fakeSearcher 固定搜索结果
type fakeSearcher struct {
	results []SearchResult
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newTestRepos(db *gorm.DB) (*repository.ProfileRepository, *repository.SessionRepository, *repository.JobRepository, *repository.LearningPathRepository, *repository.SkillTestRepository, *repository.ResumeRepository, *repository.ActivityRepository) {
	return repository.NewProfileRepository(db),
		repository.NewSessionRepository(db),
		repository.NewJobRepository(db),
		repository.NewLearningPathRepository(db),
		repository.NewSkillTestRepository(db),
		repository.NewResumeRepository(db),
		repository.NewActivityRepository(db)
}
