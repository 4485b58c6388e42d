package controller

import (
	"eduhub_backend/internal/service"
	"eduhub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	LearningService *service.LearningService
}

func NewProgressController(learningService *service.LearningService) *ProgressController {
	return &ProgressController{LearningService: learningService}
}

// ProgressRequest 课时进度上报
type ProgressRequest struct {
	LessonID  uint  `json:"lessonId" binding:"required"`
	Completed *bool `json:"completed" binding:"required"`
}

// SetProgress godoc
// @Summary 上报课时完成状态
// @Description 记录课时完成/未完成并重算课程进度；课程全部完成时自动签发证书
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ProgressRequest true "课时进度"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未登录"
// @Failure 404 {object} util.Response "课时不存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/progress [post]
func (c *ProgressController) SetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.LearningService.SetLessonProgress(claims.UserID, req.LessonID, *req.Completed)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "课时不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}

// GetCourseProgress godoc
// @Summary 查询课程学习进度
// @Description 返回报名记录和每个课时的完成状态
// @Tags 学习进度
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseProgress} "成功"
// @Failure 404 {object} util.Response "未报名该课程"
// @Router /api/courses/{id}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	progress, err := c.LearningService.GetCourseProgress(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "未报名该课程")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}
