package repository

import (
	"eduhub_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

func (r *AchievementRepository) ListByUser(userID uint, limit int) ([]model.Achievement, error) {
	var achievements []model.Achievement
	query := r.DB.Where("user_id = ?", userID).Order("earned_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&achievements).Error
	return achievements, err
}
