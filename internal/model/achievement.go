package model

import "time"

// swagger:model Achievement
type Achievement struct {
	BaseModel
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:text" json:"icon"`
	EarnedAt    time.Time `gorm:"autoCreateTime" json:"earnedAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}
