package service

import (
	"context"
	"encoding/json"
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const courseCacheTTL = 5 * time.Minute

// CatalogService 课程目录：筛选列表 + 带 Redis 缓存的详情
type CatalogService struct {
	CourseRepo   *repository.CourseRepository
	CategoryRepo *repository.CategoryRepository
	ReviewRepo   *repository.ReviewRepository
	ArticleRepo  *repository.ArticleRepository
	Redis        *redis.Client
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	reviewRepo *repository.ReviewRepository,
	articleRepo *repository.ArticleRepository,
	rdb *redis.Client,
) *CatalogService {
	return &CatalogService{
		CourseRepo:   courseRepo,
		CategoryRepo: categoryRepo,
		ReviewRepo:   reviewRepo,
		ArticleRepo:  articleRepo,
		Redis:        rdb,
	}
}

func (s *CatalogService) ListCourses(filter repository.CourseFilter) ([]model.Course, int64, error) {
	return s.CourseRepo.List(filter)
}

// CourseDetail 目录详情页：课程、有序课时和评价
type CourseDetail struct {
	Course  model.Course   `json:"course"`
	Reviews []model.Review `json:"reviews"`
}

func (s *CatalogService) courseCacheKey(id uint) string {
	return fmt.Sprintf("course:detail:%d", id)
}

func (s *CatalogService) GetCourseDetail(ctx context.Context, id uint) (*CourseDetail, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, s.courseCacheKey(id)).Result(); err == nil {
			var detail CourseDetail
			if json.Unmarshal([]byte(cached), &detail) == nil {
				return &detail, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByIDWithLessons(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	reviews, err := s.ReviewRepo.ListByCourse(id)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: *course, Reviews: reviews}

	if s.Redis != nil {
		if data, err := json.Marshal(detail); err == nil {
			s.Redis.Set(ctx, s.courseCacheKey(id), data, courseCacheTTL)
		}
	}

	return detail, nil
}

// InvalidateCourse 后台写操作后清除详情缓存
func (s *CatalogService) InvalidateCourse(ctx context.Context, id uint) {
	if s.Redis != nil {
		s.Redis.Del(ctx, s.courseCacheKey(id))
	}
}

func (s *CatalogService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.List()
}

func (s *CatalogService) ListArticles(page, limit int) ([]model.Article, int64, error) {
	return s.ArticleRepo.ListPublished(page, limit)
}

func (s *CatalogService) GetArticle(slug string) (*model.Article, error) {
	article, err := s.ArticleRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	// 未发布的文章对外不可见
	if !article.Published {
		return nil, gorm.ErrRecordNotFound
	}
	return article, nil
}
