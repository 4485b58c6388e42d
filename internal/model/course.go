package model

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

type CourseFormat string

const (
	FormatOnline  CourseFormat = "ONLINE"
	FormatOffline CourseFormat = "OFFLINE"
	FormatHybrid  CourseFormat = "HYBRID"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title         string       `gorm:"size:255;not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Image         string       `gorm:"type:text" json:"image"`
	Duration      int          `json:"duration"` // 课程时长（小时）
	Level         CourseLevel  `gorm:"size:20" json:"level"`
	Format        CourseFormat `gorm:"size:20" json:"format"`
	Price         float64      `gorm:"type:decimal(10,2)" json:"price"`
	Rating        float64      `gorm:"type:decimal(3,2);default:0" json:"rating"`
	CategoryID    *uint        `gorm:"index" json:"categoryId"`
	Category      *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	InstitutionID *uint        `gorm:"index" json:"institutionId"`
	Institution   *Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	InstructorID  *uint        `gorm:"index" json:"instructorId"`
	Instructor    *Instructor  `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Lessons       []Lesson     `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
