package model

// Lesson 属于唯一课程，(course_id, sort_order) 唯一，保证同一课程内课时顺序不重复
// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title         string  `gorm:"size:255;not null" json:"title"`
	Content       string  `gorm:"type:text" json:"content"`
	VideoURL      string  `gorm:"type:text" json:"videoUrl"`
	VideoDuration float64 `json:"videoDuration"` // 秒
	SortOrder     int     `gorm:"not null;uniqueIndex:idx_lessons_course_order,priority:2" json:"order"`
	CourseID      uint    `gorm:"not null;uniqueIndex:idx_lessons_course_order,priority:1;index" json:"courseId"`
}

func (Lesson) TableName() string {
	return "lessons"
}
