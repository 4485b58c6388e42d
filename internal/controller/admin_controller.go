package controller

import (
	"eduhub_backend/internal/model"
	"eduhub_backend/internal/service"
	"eduhub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// CourseRequest 后台课程维护请求
type CourseRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Duration      int     `json:"duration"`
	Level         string  `json:"level" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Format        string  `json:"format" binding:"omitempty,oneof=ONLINE OFFLINE HYBRID"`
	Price         float64 `json:"price"`
	CategoryID    *uint   `json:"categoryId"`
	InstitutionID *uint   `json:"institutionId"`
	InstructorID  *uint   `json:"instructorId"`
}

func (r *CourseRequest) apply(course *model.Course) {
	course.Title = r.Title
	course.Description = r.Description
	course.Image = r.Image
	course.Duration = r.Duration
	course.Level = model.CourseLevel(r.Level)
	course.Format = model.CourseFormat(r.Format)
	course.Price = r.Price
	course.CategoryID = r.CategoryID
	course.InstitutionID = r.InstitutionID
	course.InstructorID = r.InstructorID
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{}
	req.apply(course)

	if err := c.AdminService.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "更新成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.AdminService.CourseRepo.FindByID(id)
	if err != nil {
		util.NotFound(ctx, "课程不存在")
		return
	}
	req.apply(course)

	if err := c.AdminService.UpdateCourse(ctx.Request.Context(), course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 后台管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "删除成功"
// @Router /api/admin/courses/{id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	if err := c.AdminService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "已删除"})
}

// LessonRequest 后台课时维护请求
type LessonRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	SortOrder int    `json:"order" binding:"required,min=1"`
}

// CreateLesson godoc
// @Summary 新建课时
// @Description 同一课程内课时顺序号不允许重复
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body LessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "顺序号已被占用"
// @Router /api/admin/courses/{id}/lessons [post]
func (c *AdminController) CreateLesson(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := &model.Lesson{
		Title:     req.Title,
		Content:   req.Content,
		SortOrder: req.SortOrder,
		CourseID:  courseID,
	}

	if err := c.AdminService.CreateLesson(ctx.Request.Context(), lesson); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "课程不存在")
		case errors.Is(err, util.ErrDuplicateOrder):
			util.Conflict(ctx, "顺序号已被占用")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Tags 后台管理
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/admin/lessons/{id} [delete]
func (c *AdminController) DeleteLesson(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课时ID")
		return
	}

	if err := c.AdminService.DeleteLesson(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "课时不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "已删除"})
}

// UploadLessonVideo godoc
// @Summary 上传课时视频
// @Description 上传后自动探测视频时长并回写课时
// @Tags 后台管理
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课时ID"
// @Param   video formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.Lesson} "上传成功"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/admin/lessons/{id}/video [post]
func (c *AdminController) UploadLessonVideo(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课时ID")
		return
	}

	fileHeader, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "缺少视频文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	lesson, err := c.AdminService.UploadLessonVideo(
		ctx.Request.Context(),
		id,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "课时不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lesson)
}

// EnrollmentOverrideRequest 管理员报名状态干预
type EnrollmentOverrideRequest struct {
	Status string `json:"status" binding:"required,oneof=ENROLLED COMPLETED DROPPED"`
}

// OverrideEnrollment godoc
// @Summary 修改报名状态
// @Description 管理员直接设置报名状态，绕过进度重算
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "报名ID"
// @Param   body body EnrollmentOverrideRequest true "目标状态"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 404 {object} util.Response "报名不存在"
// @Router /api/admin/enrollments/{id}/status [put]
func (c *AdminController) OverrideEnrollment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的报名ID")
		return
	}

	var req EnrollmentOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.AdminService.OverrideEnrollmentStatus(id, model.EnrollmentStatus(req.Status))
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "报名不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}

// CategoryRequest 分类维护请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory godoc
// @Summary 创建分类
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CategoryRequest true "分类信息"
// @Success 201 {object} util.Response{data=model.Category} "创建成功"
// @Failure 409 {object} util.Response "slug 已存在"
// @Router /api/admin/categories [post]
func (c *AdminController) CreateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := c.AdminService.CreateCategory(category); err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Conflict(ctx, "slug 已存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, category)
}

// ArticleRequest 文章维护请求
type ArticleRequest struct {
	Title      string `json:"title" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Excerpt    string `json:"excerpt"`
	Image      string `json:"image"`
	CategoryID *uint  `json:"categoryId"`
	Published  bool   `json:"published"`
}

// CreateArticle godoc
// @Summary 创建文章
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ArticleRequest true "文章信息"
// @Success 201 {object} util.Response{data=model.Article} "创建成功"
// @Failure 409 {object} util.Response "slug 已存在"
// @Router /api/admin/articles [post]
func (c *AdminController) CreateArticle(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	article := &model.Article{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Image:      req.Image,
		AuthorID:   &claims.UserID,
		CategoryID: req.CategoryID,
		Published:  req.Published,
	}

	if err := c.AdminService.CreateArticle(article); err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Conflict(ctx, "slug 已存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, article)
}

// PublishArticleRequest 发布状态切换
type PublishArticleRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// PublishArticle godoc
// @Summary 发布/下线文章
// @Tags 后台管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "文章ID"
// @Param   body body PublishArticleRequest true "发布状态"
// @Success 200 {object} util.Response{data=model.Article} "成功"
// @Failure 404 {object} util.Response "文章不存在"
// @Router /api/admin/articles/{id}/publish [put]
func (c *AdminController) PublishArticle(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的文章ID")
		return
	}

	var req PublishArticleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	article, err := c.AdminService.PublishArticle(id, *req.Published)
	if err != nil {
		util.NotFound(ctx, "文章不存在")
		return
	}

	util.Success(ctx, article)
}

// GetStats godoc
// @Summary 平台统计
// @Tags 后台管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.AdminStats} "成功"
// @Router /api/admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.AdminService.GetStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
