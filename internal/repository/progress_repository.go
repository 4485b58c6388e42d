package repository

import (
	"eduhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) Update(progress *model.Progress) error {
	return r.DB.Save(progress).Error
}

// CompletedLessonIDs 返回用户已完成的全部课时ID
func (r *ProgressRepository) CompletedLessonIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Progress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// CountCompletedInCourse 统计用户在某课程内完成的课时数
func (r *ProgressRepository) CountCompletedInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Joins("JOIN lessons ON lessons.id = progress.lesson_id").
		Where("progress.user_id = ? AND progress.completed = ? AND lessons.course_id = ?", userID, true, courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) ListByUserAndCourse(userID, courseID uint) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.
		Joins("JOIN lessons ON lessons.id = progress.lesson_id").
		Where("progress.user_id = ? AND lessons.course_id = ?", userID, courseID).
		Find(&records).Error
	return records, err
}
