package repository

import (
	"eduhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter 课程目录的筛选条件
type CourseFilter struct {
	CategorySlug string
	Level        string
	Format       string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	Page         int
	Limit        int
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Institution").
		Preload("Instructor").
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByIDWithLessons(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Institution").
		Preload("Instructor").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) List(filter CourseFilter) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).
		Preload("Category").
		Preload("Institution").
		Preload("Instructor")

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Level != "" {
		query = query.Where("courses.level = ?", filter.Level)
	}
	if filter.Format != "" {
		query = query.Where("courses.format = ?", filter.Format)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("courses.title LIKE ? OR courses.description LIKE ?", like, like)
	}
	if filter.MinPrice != nil {
		query = query.Where("courses.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("courses.price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var courses []model.Course
	err := query.
		Order("courses.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) UpdateRating(courseID uint, rating float64) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("rating", rating).
		Error
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}
