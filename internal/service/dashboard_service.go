package service

import (
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/repository"
)

type DashboardService struct {
	EnrollmentRepo  *repository.EnrollmentRepository
	CertificateRepo *repository.CertificateRepository
	AchievementRepo *repository.AchievementRepository
}

func NewDashboardService(
	enrollmentRepo *repository.EnrollmentRepository,
	certificateRepo *repository.CertificateRepository,
	achievementRepo *repository.AchievementRepository,
) *DashboardService {
	return &DashboardService{
		EnrollmentRepo:  enrollmentRepo,
		CertificateRepo: certificateRepo,
		AchievementRepo: achievementRepo,
	}
}

type DashboardStats struct {
	TotalCourses      int `json:"totalCourses"`
	CompletedCourses  int `json:"completedCourses"`
	InProgressCourses int `json:"inProgressCourses"`
	Certificates      int `json:"certificates"`
	Achievements      int `json:"achievements"`
}

type Dashboard struct {
	Enrollments  []model.Enrollment  `json:"enrollments"`
	Certificates []model.Certificate `json:"certificates"`
	Achievements []model.Achievement `json:"achievements"`
	Stats        DashboardStats      `json:"stats"`
}

// GetDashboard 个人主页：报名、证书、成就和统计数字
func (s *DashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	certificates, err := s.CertificateRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.AchievementRepo.ListByUser(userID, 10)
	if err != nil {
		return nil, err
	}

	stats := DashboardStats{
		TotalCourses: len(enrollments),
		Certificates: len(certificates),
		Achievements: len(achievements),
	}
	for _, e := range enrollments {
		switch e.Status {
		case model.StatusCompleted:
			stats.CompletedCourses++
		case model.StatusEnrolled:
			stats.InProgressCourses++
		}
	}

	return &Dashboard{
		Enrollments:  enrollments,
		Certificates: certificates,
		Achievements: achievements,
		Stats:        stats,
	}, nil
}

func (s *DashboardService) ListCertificates(userID uint) ([]model.Certificate, error) {
	return s.CertificateRepo.ListByUser(userID)
}
