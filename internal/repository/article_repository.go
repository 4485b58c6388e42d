package repository

import (
	"eduhub_backend/internal/model"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	DB *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{DB: db}
}

func (r *ArticleRepository) ListPublished(page, limit int) ([]model.Article, int64, error) {
	query := r.DB.Model(&model.Article{}).Where("published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var articles []model.Article
	err := query.Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

func (r *ArticleRepository) FindBySlug(slug string) (*model.Article, error) {
	var article model.Article
	err := r.DB.Where("slug = ?", slug).First(&article).Error
	return &article, err
}

func (r *ArticleRepository) FindByID(id uint) (*model.Article, error) {
	var article model.Article
	err := r.DB.First(&article, id).Error
	return &article, err
}

func (r *ArticleRepository) Create(article *model.Article) error {
	return r.DB.Create(article).Error
}

func (r *ArticleRepository) Update(article *model.Article) error {
	return r.DB.Save(article).Error
}

func (r *ArticleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Article{}, id).Error
}
