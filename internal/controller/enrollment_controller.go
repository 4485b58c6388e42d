package controller

import (
	"eduhub_backend/internal/service"
	"eduhub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary 报名课程
// @Description 为当前用户创建报名记录，初始状态 ENROLLED、进度 0
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment} "报名成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名该课程"
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
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

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "课程不存在")
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, "已报名该课程")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// Drop godoc
// @Summary 退课
// @Description 将报名状态置为 DROPPED，进度记录保留
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "退课成功"
// @Failure 404 {object} util.Response "未报名该课程"
// @Router /api/courses/{id}/enroll [delete]
func (c *EnrollmentController) Drop(ctx *gin.Context) {
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

	if err := c.EnrollmentService.Drop(claims.UserID, courseID); err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "未报名该课程")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "已退课"})
}

// ListMine godoc
// @Summary 我的报名列表
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment} "成功"
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}
