package repository

import (
	"career_agent_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.DB.Create(path).Error
}

func (r *LearningPathRepository) List() ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Order("created_at desc").Find(&paths).Error
	return paths, err
}

func (r *LearningPathRepository) Latest() (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Order("created_at desc").First(&path).Error
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (r *LearningPathRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningPath{}).Count(&count).Error
	return count, err
}
