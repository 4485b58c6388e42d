package model

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

// swagger:model User
type User struct {
	BaseModel
	Email    string   `gorm:"size:255;unique;not null" json:"email"`
	Name     string   `gorm:"size:255" json:"name"`
	Password string   `gorm:"type:text" json:"-"`
	Avatar   string   `gorm:"type:text" json:"avatar"`
	Role     UserRole `gorm:"size:20;default:'STUDENT'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
