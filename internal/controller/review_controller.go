package controller

import (
	"eduhub_backend/internal/service"
	"eduhub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// ReviewRequest 课程评价请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Submit godoc
// @Summary 提交课程评价
// @Description 同一用户对同一课程的评价会原地更新；提交后课程评分按均值刷新
// @Tags 评价
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body ReviewRequest true "评分和评论"
// @Success 200 {object} util.Response{data=model.Review} "更新成功"
// @Success 201 {object} util.Response{data=model.Review} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/reviews [post]
func (c *ReviewController) Submit(ctx *gin.Context) {
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

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, created, err := c.ReviewService.Submit(claims.UserID, courseID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "课程不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if created {
		util.Created(ctx, review)
	} else {
		util.Success(ctx, review)
	}
}

// List godoc
// @Summary 课程评价列表
// @Tags 评价
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Review} "成功"
// @Router /api/courses/{id}/reviews [get]
func (c *ReviewController) List(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	reviews, err := c.ReviewService.ListForCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, reviews)
}
