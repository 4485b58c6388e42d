package service

import (
	"context"
	"eduhub_backend/internal/config"
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminService(db *gorm.DB) *AdminService {
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = "testdata-unused"

	catalog := NewCatalogService(
		repository.NewCourseRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewReviewRepository(db),
		repository.NewArticleRepository(db),
		nil,
	)

	return NewAdminService(
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewArticleRepository(db),
		repository.NewEnrollmentRepository(db),
		NewStorageService(cfg),
		catalog,
	)
}

func TestCreateLessonRejectsDuplicateOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 2)
	ctx := context.Background()

	err := svc.CreateLesson(ctx, &model.Lesson{Title: "Dup", SortOrder: 2, CourseID: course.ID})
	assert.ErrorIs(t, err, util.ErrDuplicateOrder)

	// 下一个空位可用
	err = svc.CreateLesson(ctx, &model.Lesson{Title: "Next", SortOrder: 3, CourseID: course.ID})
	assert.NoError(t, err)
}

func TestCreateLessonUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	err := svc.CreateLesson(context.Background(), &model.Lesson{Title: "L", SortOrder: 1, CourseID: 9999})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestOverrideEnrollmentStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 1)
	enrollment := seedEnrollment(t, db, user.ID, course.ID)

	updated, err := svc.OverrideEnrollmentStatus(enrollment.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	// 改回 ENROLLED 时清空完成时间
	updated, err = svc.OverrideEnrollmentStatus(enrollment.ID, model.StatusEnrolled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnrolled, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestOverrideEnrollmentStatusUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	_, err := svc.OverrideEnrollmentStatus(9999, model.StatusCompleted)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCreateCategorySlugTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Go", Slug: "go"}))
	assert.ErrorIs(t, svc.CreateCategory(&model.Category{Name: "Golang", Slug: "go"}), util.ErrSlugTaken)
}

func TestPublishArticleStampsTime(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService(db)

	article := &model.Article{Title: "Hello", Slug: "hello", Content: "body"}
	require.NoError(t, svc.CreateArticle(article))
	assert.Nil(t, article.PublishedAt)

	published, err := svc.PublishArticle(article.ID, true)
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)
	firstPublish := *published.PublishedAt

	// 下线再发布不刷新首次发布时间
	_, err = svc.PublishArticle(article.ID, false)
	require.NoError(t, err)
	republished, err := svc.PublishArticle(article.ID, true)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, firstPublish.Unix(), republished.PublishedAt.Unix())
}
