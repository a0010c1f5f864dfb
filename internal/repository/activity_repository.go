package repository

import (
	"career_agent_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityRepository 记录用户行为流水，仪表盘和活动页从这里读
type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Log(activityType string, data map[string]interface{}) error {
	activity := &model.Activity{
		ActivityType: activityType,
		ActivityData: datatypes.JSONMap(data),
		CreatedAt:    time.Now(),
	}
	return r.DB.Create(activity).Error
}

func (r *ActivityRepository) Recent(limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.DB.Order("created_at desc").Limit(limit).Find(&activities).Error
	return activities, err
}

// CountByTypeSince 统计最近 days 天内各类型的活动次数
func (r *ActivityRepository) CountByTypeSince(days int) (map[string]int64, error) {
	since := time.Now().AddDate(0, 0, -days)
	var rows []struct {
		ActivityType string
		Total        int64
	}
	err := r.DB.Model(&model.Activity{}).
		Select("activity_type, count(*) as total").
		Where("created_at >= ?", since).
		Group("activity_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.ActivityType] = row.Total
	}
	return counts, nil
}
