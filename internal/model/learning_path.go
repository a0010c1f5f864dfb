package model

import (
	"time"

	"gorm.io/datatypes"
)

// MilestoneResource 里程碑引用的学习资源
type MilestoneResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Milestone 学习路径的周里程碑
type Milestone struct {
	Week      int                 `json:"week"`
	Title     string              `json:"title"`
	Topics    []string            `json:"topics"`
	Resources []MilestoneResource `json:"resources,omitempty"`
}

// LearningPath 学习路径，追加写日志；“最新”即最近插入的一条
// swagger:model LearningPath
type LearningPath struct {
	ID               uint                           `gorm:"primaryKey;autoIncrement" json:"id"`
	Skill            string                         `gorm:"size:100;index" json:"skill"`
	DurationWeeks    int                            `gorm:"default:4" json:"duration_weeks"`
	Prerequisites    datatypes.JSONSlice[string]    `gorm:"type:json" json:"prerequisites"`
	Milestones       datatypes.JSONSlice[Milestone] `gorm:"type:json" json:"milestones"`
	PracticeProjects datatypes.JSONSlice[string]    `gorm:"type:json" json:"practice_projects"`
	InterviewTips    datatypes.JSONSlice[string]    `gorm:"type:json" json:"interview_tips"`
	Message          string                         `gorm:"type:text" json:"message,omitempty"`
	AutoGenerated    bool                           `gorm:"default:false" json:"auto_generated"`
	CreatedFromJobs  datatypes.JSONSlice[string]    `gorm:"type:json" json:"created_from_jobs"`
	CreatedAt        time.Time                      `json:"timestamp"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}
