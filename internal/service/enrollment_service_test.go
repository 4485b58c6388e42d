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

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
}

func TestEnroll(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 2)

	enrollment, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusEnrolled, enrollment.Status)
	assert.Equal(t, 0, enrollment.Progress)
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.Enroll(user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestEnrollTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 2)

	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(user.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestDrop(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 2)

	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Drop(user.ID, course.ID))

	e := reloadEnrollment(t, db, user.ID, course.ID)
	assert.Equal(t, model.StatusDropped, e.Status)
}

func TestDropWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(db)
	user := seedUser(t, db, "a@example.com")
	course, _ := seedCourseWithLessons(t, db, "Go Basics", 2)

	err := svc.Drop(user.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}
