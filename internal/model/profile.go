package model

import (
	"gorm.io/datatypes"
)

// 偏好键，Preferences 中约定的字段
const (
	PrefPreferredLocation = "preferred_location"
	PrefPreferredRole     = "preferred_role"
	PrefLearnedSkills     = "learned_skills"
)

// UserProfile 用户档案，整个进程只有一行
// swagger:model UserProfile
type UserProfile struct {
	BaseModel
	Name        string                      `gorm:"size:100" json:"name"`
	Email       string                      `gorm:"size:255" json:"email"`
	Role        string                      `gorm:"size:100" json:"role"`
	Location    string                      `gorm:"size:100" json:"location"`
	SalaryMin   string                      `gorm:"size:50" json:"salary_min"`
	SalaryMax   string                      `gorm:"size:50" json:"salary_max"`
	Skills      datatypes.JSONSlice[string] `gorm:"type:json" json:"skills"`
	Preferences datatypes.JSONMap           `gorm:"type:json" json:"preferences"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}

// PreferredLocation 读取首选工作地点偏好，未设置时返回空串
func (p *UserProfile) PreferredLocation() string {
	if v, ok := p.Preferences[PrefPreferredLocation].(string); ok {
		return v
	}
	return ""
}

// LearnedSkills 读取已学习技能清单（去重写入的账本）
func (p *UserProfile) LearnedSkills() []string {
	raw, ok := p.Preferences[PrefLearnedSkills].([]interface{})
	if !ok {
		return nil
	}
	skills := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			skills = append(skills, s)
		}
	}
	return skills
}
