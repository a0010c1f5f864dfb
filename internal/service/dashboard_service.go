package service

import (
	"career_agent_backend/internal/repository"
	"career_agent_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardCacheKey = "career_agent:dashboard"
const dashboardCacheTTL = 30 * time.Second

// ApplicationDay 最近7天每天的投递数，name是星期缩写
type ApplicationDay struct {
	Name string `json:"name"`
	Jobs int    `json:"jobs"`
}

// DashboardStats 仪表盘聚合数据
type DashboardStats struct {
	TotalJobs           int64            `json:"total_jobs"`
	JobsApplied         int64            `json:"jobs_applied"`
	ActiveLearningPaths int64            `json:"active_learning_paths"`
	ResumeScore         int              `json:"resume_score"`
	RecentActivity      []string         `json:"recent_activity"`
	ApplicationHistory  []ApplicationDay `json:"application_history"`
}

// DashboardService 聚合仪表盘数据，redis可用时做短TTL缓存
type DashboardService struct {
	Jobs    *repository.JobRepository
	Paths   *repository.LearningPathRepository
	Reviews *repository.ResumeRepository
	Cache   *redis.Client
}

func NewDashboardService(jobs *repository.JobRepository, paths *repository.LearningPathRepository, reviews *repository.ResumeRepository, cache *redis.Client) *DashboardService {
	return &DashboardService{Jobs: jobs, Paths: paths, Reviews: reviews, Cache: cache}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var cached DashboardStats
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	stats, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.Cache.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

func (s *DashboardService) compute() (*DashboardStats, error) {
	totalJobs, err := s.Jobs.CountAll()
	if err != nil {
		return nil, err
	}
	applied, err := s.Jobs.CountApplied()
	if err != nil {
		return nil, err
	}
	pathCount, err := s.Paths.Count()
	if err != nil {
		return nil, err
	}

	resumeScore := 0
	if latest, err := s.Reviews.Latest(); err == nil {
		resumeScore = latest.Score
	}

	activity := []string{}
	if titles, err := s.Jobs.RecentTitles(3); err == nil {
		for _, title := range titles {
			activity = append(activity, "Found job: "+title)
		}
	}
	if reviews, err := s.Reviews.List(); err == nil {
		for i, review := range reviews {
			if i >= 2 {
				break
			}
			activity = append(activity, fmt.Sprintf("Resume reviewed: Score %d", review.Score))
		}
	}

	history, err := s.applicationHistory()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalJobs:           totalJobs,
		JobsApplied:         applied,
		ActiveLearningPaths: pathCount,
		ResumeScore:         resumeScore,
		RecentActivity:      activity,
		ApplicationHistory:  history,
	}, nil
}

// applicationHistory 最近7天（含今天）的投递直方图，按星期缩写命名
func (s *DashboardService) applicationHistory() ([]ApplicationDay, error) {
	buckets, err := s.Jobs.AppliedByDay(7)
	if err != nil {
		return nil, err
	}

	history := make([]ApplicationDay, 0, 7)
	today := time.Now()
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		history = append(history, ApplicationDay{
			Name: day.Format("Mon"),
			Jobs: buckets[day.Format("2006-01-02")],
		})
	}
	return history, nil
}
