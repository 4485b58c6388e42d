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

func newLearningService(db *gorm.DB) *LearningService {
	return NewLearningService(
		repository.NewLessonRepository(db),
		repository.NewProgressRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewCertificateRepository(db),
		repository.NewAchievementRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		nil,
		db,
	)
}

func reloadEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()
	var e model.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error)
	return &e
}

func certificateCount(t *testing.T, db *gorm.DB, userID, courseID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).Count(&n).Error)
	return n
}

func TestSetLessonProgressUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.SetLessonProgress(user.ID, 9999, true)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestSetLessonProgressRecordsCompletion(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, lessons := seedCourseWithLessons(t, db, "Go Basics", 4)
	seedEnrollment(t, db, user.ID, course.ID)

	record, err := svc.SetLessonProgress(user.ID, lessons[0].ID, true)
	require.NoError(t, err)
	assert.True(t, record.Completed)
	assert.NotNil(t, record.CompletedAt)

	e := reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 25, e.Progress)
	assert.Equal(t, model.StatusEnrolled, e.Status)
	assert.Nil(t, e.CompletedAt)
}

func TestSetLessonProgressIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, lessons := seedCourseWithLessons(t, db, "Go Basics", 4)
	seedEnrollment(t, db, user.ID, course.ID)

	_, err := svc.SetLessonProgress(user.ID, lessons[0].ID, true)
	require.NoError(t, err)
	_, err = svc.SetLessonProgress(user.ID, lessons[0].ID, true)
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&model.Progress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	e := reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 25, e.Progress)
}

func TestCourseCompletionIssuesCertificate(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, lessons := seedCourseWithLessons(t, db, "Go Basics", 4)
	seedEnrollment(t, db, user.ID, course.ID)

	for i := 0; i < 3; i++ {
		_, err := svc.SetLessonProgress(user.ID, lessons[i].ID, true)
		require.NoError(t, err)
	}

	e := reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 75, e.Progress)
	assert.Equal(t, model.StatusEnrolled, e.Status)
	assert.Equal(t, int64(0), certificateCount(t, db, user.ID, course.ID))

	_, err := svc.SetLessonProgress(user.ID, lessons[3].ID, true)
	require.NoError(t, err)

	e = reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 100, e.Progress)
	assert.Equal(t, model.StatusCompleted, e.Status)
	assert.NotNil(t, e.CompletedAt)
	assert.Equal(t, int64(1), certificateCount(t, db, user.ID, course.ID))

	// 结课成就同步落库
	var achievements int64
	require.NoError(t, db.Model(&model.Achievement{}).
		Where("user_id = ?", user.ID).Count(&achievements).Error)
	assert.Equal(t, int64(1), achievements)
}

func TestCertificateIssuedOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, lessons := seedCourseWithLessons(t, db, "Go Basics", 2)
	seedEnrollment(t, db, user.ID, course.ID)

	for _, l := range lessons {
		_, err := svc.SetLessonProgress(user.ID, l.ID, true)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), certificateCount(t, db, user.ID, course.ID))

	// 重复上报最后一课不会再次翻转状态
	_, err := svc.SetLessonProgress(user.ID, lessons[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), certificateCount(t, db, user.ID, course.ID))

	// 取消完成退回 ENROLLED，再次完成也不补发证书
	_, err = svc.SetLessonProgress(user.ID, lessons[1].ID, false)
	require.NoError(t, err)

	e := reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 50, e.Progress)
	assert.Equal(t, model.StatusEnrolled, e.Status)
	assert.Nil(t, e.CompletedAt)

	_, err = svc.SetLessonProgress(user.ID, lessons[1].ID, true)
	require.NoError(t, err)

	e = reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, model.StatusCompleted, e.Status)
	assert.Equal(t, int64(1), certificateCount(t, db, user.ID, course.ID))
}

func TestProgressWithoutEnrollmentIsRecorded(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	_, lessons := seedCourseWithLessons(t, db, "Go Basics", 1)

	// 未报名时照常记录课时进度，但不签发证书
	record, err := svc.SetLessonProgress(user.ID, lessons[0].ID, true)
	require.NoError(t, err)
	assert.True(t, record.Completed)

	var certs int64
	require.NoError(t, db.Model(&model.Certificate{}).Count(&certs).Error)
	assert.Equal(t, int64(0), certs)
}

func TestZeroLessonCourseNeverCompletes(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Empty Course", 0)
	seedEnrollment(t, db, user.ID, course.ID)

	other, otherLessons := seedCourseWithLessons(t, db, "Other", 1)
	seedEnrollment(t, db, user.ID, other.ID)

	_, err := svc.SetLessonProgress(user.ID, otherLessons[0].ID, true)
	require.NoError(t, err)

	// 空课程的报名保持 0%/ENROLLED
	e := reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, 0, e.Progress)
	assert.Equal(t, model.StatusEnrolled, e.Status)
}

func TestPercentageRounding(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, lessons := seedCourseWithLessons(t, db, "Go Basics", 3)
	seedEnrollment(t, db, user.ID, course.ID)

	// 1/3 -> 33，2/3 -> 67（四舍五入）
	_, err := svc.SetLessonProgress(user.ID, lessons[0].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 33, reloadEnrollment(t, db, user.ID, course.ID).Progress)

	_, err = svc.SetLessonProgress(user.ID, lessons[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, 67, reloadEnrollment(t, db, user.ID, course.ID).Progress)
}

func TestGetCourseProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, lessons := seedCourseWithLessons(t, db, "Go Basics", 3)
	seedEnrollment(t, db, user.ID, course.ID)

	_, err := svc.SetLessonProgress(user.ID, lessons[1].ID, true)
	require.NoError(t, err)

	progress, err := svc.GetCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, progress.Enrollment)
	require.Len(t, progress.Lessons, 3)

	assert.False(t, progress.Lessons[0].Completed)
	assert.True(t, progress.Lessons[1].Completed)
	assert.NotNil(t, progress.Lessons[1].CompletedAt)
	assert.False(t, progress.Lessons[2].Completed)
}

func TestGetCourseProgressRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 2)

	_, err := svc.GetCourseProgress(user.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}
