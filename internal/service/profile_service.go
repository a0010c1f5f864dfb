package service

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/repository"

	"gorm.io/datatypes"
)

// ProfileUpdate 档案更新请求。指针字段缺省表示不修改，
// 更新是合并式的，不会清掉未提交的字段。
type ProfileUpdate struct {
	Name        *string                `json:"name"`
	Email       *string                `json:"email"`
	Role        *string                `json:"role"`
	Location    *string                `json:"location"`
	SalaryMin   *string                `json:"salary_min"`
	SalaryMax   *string                `json:"salary_max"`
	Skills      []string               `json:"skills"`
	Preferences map[string]interface{} `json:"preferences"`
}

// ProfileService 用户档案读写
type ProfileService struct {
	Profiles *repository.ProfileRepository
}

func NewProfileService(profiles *repository.ProfileRepository) *ProfileService {
	return &ProfileService{Profiles: profiles}
}

func (s *ProfileService) Get() (*model.UserProfile, error) {
	return s.Profiles.Get()
}

// Update 合并式更新档案
func (s *ProfileService) Update(update *ProfileUpdate) (*model.UserProfile, error) {
	profile, err := s.Profiles.Get()
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	if update.Role != nil {
		profile.Role = *update.Role
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.SalaryMin != nil {
		profile.SalaryMin = *update.SalaryMin
	}
	if update.SalaryMax != nil {
		profile.SalaryMax = *update.SalaryMax
	}
	if update.Skills != nil {
		profile.Skills = datatypes.NewJSONSlice(update.Skills)
	}
	if update.Preferences != nil {
		if profile.Preferences == nil {
			profile.Preferences = datatypes.JSONMap{}
		}
		for k, v := range update.Preferences {
			profile.Preferences[k] = v
		}
	}

	if err := s.Profiles.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetPreference 设置单个偏好项，其余偏好保持不变
func (s *ProfileService) SetPreference(key string, value interface{}) (*model.UserProfile, error) {
	if err := s.Profiles.SetPreference(key, value); err != nil {
		return nil, err
	}
	return s.Profiles.Get()
}
