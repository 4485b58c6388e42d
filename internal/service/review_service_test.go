package service

import (
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewCourseRepository(db),
	)
}

func TestSubmitReviewCreatesAndUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 1)

	review, created, err := svc.Submit(user.ID, course.ID, 4, "不错")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 4, review.Rating)

	// 第二次提交原地更新
	review, created, err = svc.Submit(user.ID, course.ID, 2, "改观了")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, review.Rating)

	var rows int64
	require.NoError(t, db.Model(&model.Review{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSubmitReviewRefreshesCourseRating(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 1)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	_, _, err := svc.Submit(alice.ID, course.ID, 5, "")
	require.NoError(t, err)
	_, _, err = svc.Submit(bob.ID, course.ID, 4, "")
	require.NoError(t, err)

	var reloaded model.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.InDelta(t, 4.5, reloaded.Rating, 0.001)
}

func TestSubmitReviewUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	user := seedUser(t, db, "a@example.com")

	_, _, err := svc.Submit(user.ID, 9999, 5, "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
