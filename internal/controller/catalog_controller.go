package controller

import (
	"eduhub_backend/internal/repository"
	"eduhub_backend/internal/service"
	"eduhub_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 按分类、难度、形式、价格区间和关键词筛选，分页返回
// @Tags 课程目录
// @Produce  json
// @Param   category query string false "分类 slug"
// @Param   level query string false "难度" Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param   format query string false "形式" Enums(ONLINE, OFFLINE, HYBRID)
// @Param   search query string false "标题关键词"
// @Param   minPrice query number false "最低价格"
// @Param   maxPrice query number false "最高价格"
// @Param   page query int false "页码，默认 1"
// @Param   limit query int false "每页条数，默认 12"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	filter := repository.CourseFilter{
		CategorySlug: ctx.Query("category"),
		Level:        ctx.Query("level"),
		Format:       ctx.Query("format"),
		Search:       ctx.Query("search"),
		Page:         parseIntQuery(ctx, "page", 1),
		Limit:        parseIntQuery(ctx, "limit", 12),
	}
	if v := ctx.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := ctx.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}

	courses, total, err := c.CatalogService.ListCourses(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Page(ctx, courses, total, filter.Page, filter.Limit)
}

// GetCourse godoc
// @Summary 课程详情
// @Description 返回课程、按顺序排列的课时和评价
// @Tags 课程目录
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseDetail} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	detail, err := c.CatalogService.GetCourseDetail(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// ListCategories godoc
// @Summary 分类列表
// @Tags 课程目录
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category} "成功"
// @Router /api/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.CatalogService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// ListArticles godoc
// @Summary 已发布文章列表
// @Tags 资讯
// @Produce  json
// @Param   page query int false "页码，默认 1"
// @Param   limit query int false "每页条数，默认 10"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/articles [get]
func (c *CatalogController) ListArticles(ctx *gin.Context) {
	page := parseIntQuery(ctx, "page", 1)
	limit := parseIntQuery(ctx, "limit", 10)

	articles, total, err := c.CatalogService.ListArticles(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Page(ctx, articles, total, page, limit)
}

// GetArticle godoc
// @Summary 文章详情
// @Tags 资讯
// @Produce  json
// @Param   slug path string true "文章 slug"
// @Success 200 {object} util.Response{data=model.Article} "成功"
// @Failure 404 {object} util.Response "文章不存在"
// @Router /api/articles/{slug} [get]
func (c *CatalogController) GetArticle(ctx *gin.Context) {
	article, err := c.CatalogService.GetArticle(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "文章不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, article)
}

func parseIntQuery(ctx *gin.Context, key string, fallback int) int {
	if v := ctx.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func parseIDParam(ctx *gin.Context, key string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(key), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
