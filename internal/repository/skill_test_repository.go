package repository

import (
	"career_agent_backend/internal/model"
	"career_agent_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// SkillTestRepository 存取技能测验及其作答结果
type SkillTestRepository struct {
	DB *gorm.DB
}

func NewSkillTestRepository(db *gorm.DB) *SkillTestRepository {
	return &SkillTestRepository{DB: db}
}

func (r *SkillTestRepository) Create(test *model.SkillTest) error {
	return r.DB.Create(test).Error
}

func (r *SkillTestRepository) Get(id string) (*model.SkillTest, error) {
	var test model.SkillTest
	err := r.DB.Where("id = ?", id).First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotFound
	}
	return &test, err
}

func (r *SkillTestRepository) List() ([]model.SkillTest, error) {
	var tests []model.SkillTest
	err := r.DB.Order("created_at desc").Find(&tests).Error
	return tests, err
}

func (r *SkillTestRepository) SaveResult(result *model.TestResult) error {
	return r.DB.Create(result).Error
}

// Results 按测验ID过滤；id 为空时返回全部结果
func (r *SkillTestRepository) Results(testID string) ([]model.TestResult, error) {
	var results []model.TestResult
	query := r.DB.Order("taken_at desc")
	if testID != "" {
		query = query.Where("test_id = ?", testID)
	}
	err := query.Find(&results).Error
	return results, err
}
