package service

import (
	"context"
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"eduhub_backend/pkg/logger"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminService 后台管理：课程/课时/分类/文章维护与报名状态干预
type AdminService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	CategoryRepo   *repository.CategoryRepository
	ArticleRepo    *repository.ArticleRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Storage        *StorageService
	Catalog        *CatalogService
}

func NewAdminService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	categoryRepo *repository.CategoryRepository,
	articleRepo *repository.ArticleRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	storage *StorageService,
	catalog *CatalogService,
) *AdminService {
	return &AdminService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		CategoryRepo:   categoryRepo,
		ArticleRepo:    articleRepo,
		EnrollmentRepo: enrollmentRepo,
		Storage:        storage,
		Catalog:        catalog,
	}
}

func (s *AdminService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *AdminService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}
	s.Catalog.InvalidateCourse(ctx, course.ID)
	return nil
}

func (s *AdminService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.Catalog.InvalidateCourse(ctx, id)
	return nil
}

// CreateLesson 新建课时，同课程内顺序号必须唯一
func (s *AdminService) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	if _, err := s.CourseRepo.FindByID(lesson.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	taken, err := s.LessonRepo.OrderTaken(lesson.CourseID, lesson.SortOrder)
	if err != nil {
		return err
	}
	if taken {
		return util.ErrDuplicateOrder
	}

	if err := s.LessonRepo.Create(lesson); err != nil {
		return err
	}
	s.Catalog.InvalidateCourse(ctx, lesson.CourseID)
	return nil
}

func (s *AdminService) UpdateLesson(ctx context.Context, lesson *model.Lesson) error {
	if err := s.LessonRepo.Update(lesson); err != nil {
		return err
	}
	s.Catalog.InvalidateCourse(ctx, lesson.CourseID)
	return nil
}

func (s *AdminService) DeleteLesson(ctx context.Context, id uint) error {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrLessonNotFound
		}
		return err
	}

	if err := s.LessonRepo.Delete(id); err != nil {
		return err
	}
	s.Catalog.InvalidateCourse(ctx, lesson.CourseID)
	return nil
}

// UploadLessonVideo 上传课时视频：先落到临时文件探测时长，再推到对象存储
func (s *AdminService) UploadLessonVideo(ctx context.Context, lessonID uint, reader io.Reader, size int64, contentType string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	tmp, err := os.CreateTemp("", "lesson-video-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, reader); err != nil {
		return nil, err
	}

	var duration float64
	if info, err := util.ProbeVideo(tmp.Name()); err == nil {
		duration = info.Duration
	} else {
		// 探测失败不阻断上传，时长留空
		logger.Log.Warn("video probe failed", zap.Uint("lessonId", lessonID), zap.Error(err))
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("lessons/%d/%d_%s.mp4", lesson.CourseID, lessonID, uuid.New().String()[:8])
	url, err := s.Storage.Upload(ctx, filename, tmp, size, contentType)
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	lesson.VideoDuration = duration
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateCourse(ctx, lesson.CourseID)
	return lesson, nil
}

// OverrideEnrollmentStatus 管理员直接改报名状态（进度重算之外的唯一写路径）
func (s *AdminService) OverrideEnrollmentStatus(id uint, status model.EnrollmentStatus) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	enrollment.Status = status
	if status == model.StatusCompleted {
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	} else {
		enrollment.CompletedAt = nil
	}
	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *AdminService) CreateCategory(category *model.Category) error {
	if _, err := s.CategoryRepo.FindBySlug(category.Slug); err == nil {
		return util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.CategoryRepo.Create(category)
}

func (s *AdminService) CreateArticle(article *model.Article) error {
	if _, err := s.ArticleRepo.FindBySlug(article.Slug); err == nil {
		return util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if article.Published && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}
	return s.ArticleRepo.Create(article)
}

// PublishArticle 切换发布状态，首次发布时落发布时间
func (s *AdminService) PublishArticle(id uint, published bool) (*model.Article, error) {
	article, err := s.ArticleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	article.Published = published
	if published && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}
	if err := s.ArticleRepo.Update(article); err != nil {
		return nil, err
	}
	return article, nil
}

type AdminStats struct {
	Courses     int64 `json:"courses"`
	Enrollments int64 `json:"enrollments"`
}

func (s *AdminService) GetStats() (*AdminStats, error) {
	courses, err := s.CourseRepo.Count()
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.Count()
	if err != nil {
		return nil, err
	}
	return &AdminStats{Courses: courses, Enrollments: enrollments}, nil
}
