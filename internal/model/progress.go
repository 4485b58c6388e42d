package model

import "time"

// Progress 每课时的完成标记，(user_id, lesson_id) 唯一，只会原地更新
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID      uint       `gorm:"not null;uniqueIndex:idx_progress_user_lesson,priority:1" json:"userId"`
	LessonID    uint       `gorm:"not null;uniqueIndex:idx_progress_user_lesson,priority:2;index" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (Progress) TableName() string {
	return "progress"
}
