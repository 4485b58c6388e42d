package model

import "time"

// swagger:model Article
type Article struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;unique;not null" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Image       string     `gorm:"type:text" json:"image"`
	AuthorID    *uint      `json:"authorId"`
	CategoryID  *uint      `json:"categoryId"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (Article) TableName() string {
	return "articles"
}
