package repository

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// ProfileRepository 访问单行的用户画像
type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Get() (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProfileNotFound
	}
	return &profile, err
}

func (r *ProfileRepository) Save(profile *model.UserProfile) error {
	return r.DB.Save(profile).Error
}

// SetPreference 只改 preferences 里的一个键，其余字段不动
func (r *ProfileRepository) SetPreference(key string, value interface{}) error {
	profile, err := r.Get()
	if err != nil {
		return err
	}
	if profile.Preferences == nil {
		profile.Preferences = map[string]interface{}{}
	}
	profile.Preferences[key] = value
	return r.DB.Model(profile).Update("preferences", profile.Preferences).Error
}

// AddLearnedSkill 幂等地把技能加入 learned_skills 清单
func (r *ProfileRepository) AddLearnedSkill(skill string) error {
	profile, err := r.Get()
	if err != nil {
		return err
	}
	for _, s := range profile.LearnedSkills() {
		if s == skill {
			return nil
		}
	}
	learned := profile.LearnedSkills()
	learned = append(learned, skill)
	return r.SetPreference(model.PrefLearnedSkills, learned)
}
