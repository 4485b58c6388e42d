package service

import (
	"eduhub_backend/internal/model"
	"eduhub_backend/pkg/database"
	"eduhub_backend/pkg/logger"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// newTestDB 内存 SQLite，限制单连接保证所有操作落在同一个库上
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: "Test User", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCourseWithLessons(t *testing.T, db *gorm.DB, title string, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	course := &model.Course{Title: title, Level: model.LevelBeginner, Format: model.FormatOnline}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}

	lessons := make([]model.Lesson, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lessons[i] = model.Lesson{
			Title:     "Lesson",
			SortOrder: i + 1,
			CourseID:  course.ID,
		}
		if err := db.Create(&lessons[i]).Error; err != nil {
			t.Fatalf("seed lesson: %v", err)
		}
	}
	return course, lessons
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.StatusEnrolled,
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return enrollment
}
