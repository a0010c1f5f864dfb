package model

import (
	"time"

	"gorm.io/datatypes"
)

// 职位生命周期状态：Saved -> Applied -> 用户自定义状态
const (
	JobStatusSaved   = "Saved"
	JobStatusApplied = "Applied"
)

// 申请详情（ApplicationDetails）里约定的键
const (
	AppDetailLink        = "link"
	AppDetailAppliedDate = "applied_date"
	AppDetailStatus      = "status"
	AppDetailNotes       = "notes"
)

// Job 职位记录。目录职位使用稳定ID，搜索结果使用 web-<i> 合成ID；
// 按ID去重插入，已存在的记录不会被覆盖。
// swagger:model Job
type Job struct {
	ID                 string                      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title              string                      `gorm:"size:255" json:"title"`
	Company            string                      `gorm:"size:255" json:"company"`
	Description        string                      `gorm:"type:text" json:"description"`
	Requirements       datatypes.JSONSlice[string] `gorm:"type:json" json:"requirements"`
	Location           string                      `gorm:"size:100" json:"location"`
	SalaryRange        string                      `gorm:"size:100" json:"salary_range"`
	Status             string                      `gorm:"size:50;default:'Saved'" json:"status"`
	ApplicationDetails datatypes.JSONMap           `gorm:"type:json" json:"application_details,omitempty"`
	CreatedAt          time.Time                   `json:"createdAt"`
	UpdatedAt          time.Time                   `json:"updatedAt"`
}

func (Job) TableName() string {
	return "jobs"
}

// RequiresSkill 判断职位要求中是否包含某技能（精确匹配）
func (j *Job) RequiresSkill(skill string) bool {
	for _, r := range j.Requirements {
		if r == skill {
			return true
		}
	}
	return false
}
