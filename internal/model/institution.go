package model

// swagger:model Institution
type Institution struct {
	BaseModel
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Logo        string  `gorm:"type:text" json:"logo"`
	Website     string  `gorm:"size:500" json:"website"`
	Rating      float64 `gorm:"type:decimal(3,2);default:0" json:"rating"`
}

func (Institution) TableName() string {
	return "institutions"
}
