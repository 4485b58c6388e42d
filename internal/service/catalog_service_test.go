package service

import (
	"context"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewCourseRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewReviewRepository(db),
		repository.NewArticleRepository(db),
		nil,
	)
}

func TestGetCourseDetail(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 3)

	detail, err := svc.GetCourseDetail(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", detail.Course.Title)
	require.Len(t, detail.Course.Lessons, 3)

	// 课时按顺序号返回
	for i, lesson := range detail.Course.Lessons {
		assert.Equal(t, i+1, lesson.SortOrder)
	}
}

func TestGetCourseDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.GetCourseDetail(context.Background(), 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListCoursesFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	seedCourseWithLessons(t, db, "Go Basics", 1)
	seedCourseWithLessons(t, db, "Rust Basics", 1)

	courses, total, err := svc.ListCourses(repository.CourseFilter{Search: "Go", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
}
