package service

import (
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/util"
	"errors"
	"math"

	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo *repository.ReviewRepository
	CourseRepo *repository.CourseRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, courseRepo *repository.CourseRepository) *ReviewService {
	return &ReviewService{
		ReviewRepo: reviewRepo,
		CourseRepo: courseRepo,
	}
}

// Submit 提交评价：同一 (user, course) 的评价原地更新。
// 返回的 created 指示是新建（201）还是更新（200）
func (s *ReviewService) Submit(userID, courseID uint, rating int, comment string) (*model.Review, bool, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrCourseNotFound
		}
		return nil, false, err
	}

	created := false
	review, err := s.ReviewRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		review.Rating = rating
		review.Comment = comment
		if err := s.ReviewRepo.Update(review); err != nil {
			return nil, false, err
		}
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		review = &model.Review{
			UserID:   userID,
			CourseID: courseID,
			Rating:   rating,
			Comment:  comment,
		}
		if err := s.ReviewRepo.Create(review); err != nil {
			return nil, false, err
		}
		created = true
	} else {
		return nil, false, err
	}

	if err := s.refreshCourseRating(courseID); err != nil {
		return nil, false, err
	}

	return review, created, nil
}

// refreshCourseRating 按评价均值回写课程评分，保留两位小数
func (s *ReviewService) refreshCourseRating(courseID uint) error {
	avg, err := s.ReviewRepo.AverageRating(courseID)
	if err != nil {
		return err
	}
	return s.CourseRepo.UpdateRating(courseID, math.Round(avg*100)/100)
}

func (s *ReviewService) ListForCourse(courseID uint) ([]model.Review, error) {
	return s.ReviewRepo.ListByCourse(courseID)
}
