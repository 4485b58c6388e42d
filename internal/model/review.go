package model

// swagger:model Review
type Review struct {
	BaseModel
	UserID   uint   `gorm:"not null;uniqueIndex:idx_reviews_user_course,priority:1" json:"userId"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_reviews_user_course,priority:2;index" json:"courseId"`
	Rating   int    `gorm:"not null" json:"rating"` // 1-5
	Comment  string `gorm:"type:text" json:"comment"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
