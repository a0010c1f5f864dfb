package repository

import (
	"career_agent_backend/internal/model"

	"gorm.io/gorm"
)

type ResumeRepository struct {
	DB *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{DB: db}
}

func (r *ResumeRepository) Create(review *model.ResumeReview) error {
	return r.DB.Create(review).Error
}

func (r *ResumeRepository) Latest() (*model.ResumeReview, error) {
	var review model.ResumeReview
	err := r.DB.Order("created_at desc").First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ResumeRepository) List() ([]model.ResumeReview, error) {
	var reviews []model.ResumeReview
	err := r.DB.Order("created_at desc").Find(&reviews).Error
	return reviews, err
}
