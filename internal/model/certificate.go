package model

import "time"

// Certificate 结课凭证，每个 (user_id, course_id) 至多签发一次，编号全局唯一
// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID            uint      `gorm:"not null;index" json:"userId"`
	CourseID          uint      `gorm:"not null;index" json:"courseId"`
	CertificateNumber string    `gorm:"size:255;unique;not null" json:"certificateNumber"`
	IssuedAt          time.Time `gorm:"autoCreateTime" json:"issuedAt"`
	Course            *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
