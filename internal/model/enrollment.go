package model

import "time"

type EnrollmentStatus string

const (
	StatusEnrolled  EnrollmentStatus = "ENROLLED"
	StatusCompleted EnrollmentStatus = "COMPLETED"
	StatusDropped   EnrollmentStatus = "DROPPED"
)

// Enrollment 记录用户与课程的关联，(user_id, course_id) 唯一
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint             `gorm:"not null;uniqueIndex:idx_enrollments_user_course,priority:1" json:"userId"`
	CourseID    uint             `gorm:"not null;uniqueIndex:idx_enrollments_user_course,priority:2;index" json:"courseId"`
	Status      EnrollmentStatus `gorm:"size:20;default:'ENROLLED'" json:"status"`
	Progress    int              `gorm:"default:0" json:"progress"` // 完成百分比 0-100
	EnrolledAt  time.Time        `gorm:"autoCreateTime" json:"enrolledAt"`
	CompletedAt *time.Time       `json:"completedAt"`
	Course      *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
