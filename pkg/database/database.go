package database

import (
	"eduhub_backend/internal/config"
	"eduhub_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedCategories(db)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Institution{},
		&model.Instructor{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Progress{},
		&model.Review{},
		&model.Certificate{},
		&model.Achievement{},
		&model.Article{},
	)
}

// 默认课程分类
func seedCategories(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Category{
		{Name: "Programming", Slug: "programming", Description: "Software development and coding"},
		{Name: "Data Science", Slug: "data-science", Description: "Analytics, statistics and machine learning"},
		{Name: "Design", Slug: "design", Description: "UI/UX and graphic design"},
		{Name: "Business", Slug: "business", Description: "Management, marketing and finance"},
		{Name: "Languages", Slug: "languages", Description: "Foreign language learning"},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
