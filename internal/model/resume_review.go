package model

import (
	"time"

	"gorm.io/datatypes"
)

// ResumeReview 简历评审记录，追加写
// swagger:model ResumeReview
type ResumeReview struct {
	ID        uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	Score     int                         `json:"score"`
	Feedback  datatypes.JSONSlice[string] `gorm:"type:json" json:"feedback"`
	FileURL   string                      `gorm:"size:512" json:"file_url,omitempty"`
	CreatedAt time.Time                   `json:"timestamp"`
}

func (ResumeReview) TableName() string {
	return "resume_reviews"
}
