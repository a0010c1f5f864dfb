package model

import (
	"time"

	"gorm.io/datatypes"
)

// 活动类型
const (
	ActivityJobSearch       = "job_search"
	ActivityLearningStarted = "learning_started"
	ActivityTestTaken       = "test_taken"
	ActivitySkillAdvice     = "skill_advice"
	ActivityResumeReview    = "resume_review"
	ActivityJobApply        = "job_apply"
)

// Activity 用户活动审计日志，仪表盘用，追加写
// swagger:model Activity
type Activity struct {
	ID           uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityType string            `gorm:"size:50;index" json:"type"`
	ActivityData datatypes.JSONMap `gorm:"type:json" json:"data"`
	CreatedAt    time.Time         `gorm:"index" json:"timestamp"`
}

func (Activity) TableName() string {
	return "user_activity"
}
