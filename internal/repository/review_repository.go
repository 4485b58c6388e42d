package repository

import (
	"eduhub_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindByUserAndCourse(userID, courseID uint) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&review).Error
	return &review, err
}

func (r *ReviewRepository) Create(review *model.Review) error {
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) Update(review *model.Review) error {
	return r.DB.Save(review).Error
}

func (r *ReviewRepository) ListByCourse(courseID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.DB.Where("course_id = ?", courseID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) AverageRating(courseID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.Review{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
