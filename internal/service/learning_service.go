package service

import (
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"eduhub_backend/pkg/logger"
	"eduhub_backend/pkg/monitoring"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LearningService 承载学习进度主流程：
// 记录课时进度 -> 重算课程完成度 -> 首次完成时签发证书
type LearningService struct {
	LessonRepo      *repository.LessonRepository
	ProgressRepo    *repository.ProgressRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	CertificateRepo *repository.CertificateRepository
	AchievementRepo *repository.AchievementRepository
	CourseRepo      *repository.CourseRepository
	UserRepo        *repository.UserRepository
	Mail            *MailService
	DB              *gorm.DB
}

func NewLearningService(
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	certificateRepo *repository.CertificateRepository,
	achievementRepo *repository.AchievementRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	mail *MailService,
	db *gorm.DB,
) *LearningService {
	return &LearningService{
		LessonRepo:      lessonRepo,
		ProgressRepo:    progressRepo,
		EnrollmentRepo:  enrollmentRepo,
		CertificateRepo: certificateRepo,
		AchievementRepo: achievementRepo,
		CourseRepo:      courseRepo,
		UserRepo:        userRepo,
		Mail:            mail,
		DB:              db,
	}
}

// SetLessonProgress 记录某课时的完成状态（(user, lesson) 上的 upsert），
// 然后同步重算所属课程的完成百分比。重复调用是幂等的。
func (s *LearningService) SetLessonProgress(userID, lessonID uint, completed bool) (*model.Progress, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	record, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if err == nil {
		record.Completed = completed
		record.CompletedAt = completedAt
		if err := s.ProgressRepo.Update(record); err != nil {
			return nil, err
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		record = &model.Progress{
			UserID:      userID,
			LessonID:    lessonID,
			Completed:   completed,
			CompletedAt: completedAt,
		}
		if err := s.ProgressRepo.Create(record); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	isNowCompleted, err := s.aggregateCourseProgress(userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}

	if isNowCompleted {
		s.issueCertificate(userID, lesson.CourseID)
	}

	return record, nil
}

// aggregateCourseProgress 重算课程完成百分比并写回报名记录。
// 返回本次调用是否把课程从未完成推到已完成。
// 报名记录不存在时更新影响 0 行，不视为错误，也不会签发证书。
func (s *LearningService) aggregateCourseProgress(userID, courseID uint) (bool, error) {
	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return false, err
	}

	completedCount, err := s.ProgressRepo.CountCompletedInCourse(userID, courseID)
	if err != nil {
		return false, err
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(completedCount) / float64(total) * 100))
	}

	if percentage == 100 {
		// 条件更新：只有状态尚未是 COMPLETED 的行会被翻转，
		// 并发提交下 RowsAffected 至多有一次为 1，证书因此至多签发一次
		now := time.Now()
		res := s.DB.Model(&model.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND status <> ?", userID, courseID, model.StatusCompleted).
			Updates(map[string]interface{}{
				"progress":     percentage,
				"status":       model.StatusCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	}

	// 未到 100%：回写百分比并退回 ENROLLED，清空完成时间。
	// DROPPED 状态不会从这条路径产生
	res := s.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"progress":     percentage,
			"status":       model.StatusEnrolled,
			"completed_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return false, nil
}

// issueCertificate 签发结课证书。失败只记日志：
// 报名记录里的完成状态已经落库，是权威数据，不因证书写入失败回滚。
// 同一 (user, course) 只发一张，取消完成后再次完成不补发
func (s *LearningService) issueCertificate(userID, courseID uint) {
	exists, err := s.CertificateRepo.ExistsForUserAndCourse(userID, courseID)
	if err != nil {
		logger.Log.Error("certificate lookup failed",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.Error(err),
		)
		return
	}
	if exists {
		return
	}

	cert := &model.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: util.NewCertificateNumber(),
		IssuedAt:          time.Now(),
	}

	if err := s.CertificateRepo.Create(cert); err != nil {
		logger.Log.Error("certificate issuance failed",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.Error(err),
		)
		return
	}

	monitoring.CertificatesIssued.Inc()
	logger.Log.Info("certificate issued",
		zap.Uint("userId", userID),
		zap.Uint("courseId", courseID),
		zap.String("number", cert.CertificateNumber),
	)

	s.recordCompletion(userID, courseID)
}

// recordCompletion 结课后的附带动作：成就记录与通知邮件，均为尽力而为
func (s *LearningService) recordCompletion(userID, courseID uint) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		logger.Log.Warn("course lookup failed after completion", zap.Uint("courseId", courseID), zap.Error(err))
		return
	}

	achievement := &model.Achievement{
		UserID:      userID,
		Title:       "Course completed",
		Description: course.Title,
		Icon:        "🎓",
	}
	if err := s.AchievementRepo.Create(achievement); err != nil {
		logger.Log.Warn("achievement create failed", zap.Uint("userId", userID), zap.Error(err))
	}

	if s.Mail != nil && s.UserRepo != nil {
		if user, err := s.UserRepo.FindByID(userID); err == nil {
			s.Mail.SendCourseCompleted(user.Email, user.Name, course.Title)
		}
	}
}

// LessonProgress 学习页里单个课时的状态
type LessonProgress struct {
	Lesson      model.Lesson `json:"lesson"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completedAt"`
}

// CourseProgress 学习页聚合视图
type CourseProgress struct {
	Enrollment *model.Enrollment `json:"enrollment"`
	Lessons    []LessonProgress  `json:"lessons"`
}

// GetCourseProgress 学习页数据：课程的全部课时和当前用户的完成标记。
// 未报名的课程返回 ErrNotEnrolled
func (s *LearningService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	records, err := s.ProgressRepo.ListByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	byLesson := make(map[uint]model.Progress, len(records))
	for _, p := range records {
		byLesson[p.LessonID] = p
	}

	items := make([]LessonProgress, len(lessons))
	for i, lesson := range lessons {
		item := LessonProgress{Lesson: lesson}
		if p, ok := byLesson[lesson.ID]; ok {
			item.Completed = p.Completed
			item.CompletedAt = p.CompletedAt
		}
		items[i] = item
	}

	return &CourseProgress{Enrollment: enrollment, Lessons: items}, nil
}
