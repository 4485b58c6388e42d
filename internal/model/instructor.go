package model

// swagger:model Instructor
type Instructor struct {
	BaseModel
	Name          string       `gorm:"size:255;not null" json:"name"`
	Email         string       `gorm:"size:255" json:"email"`
	Bio           string       `gorm:"type:text" json:"bio"`
	Avatar        string       `gorm:"type:text" json:"avatar"`
	InstitutionID *uint        `json:"institutionId"`
	Institution   *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}

func (Instructor) TableName() string {
	return "instructors"
}
