package controller

import (
	"errors"
	"strconv"
	"trig_quiz_backend/internal/service"
	"trig_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Service *service.AssignmentService
}

func NewAssignmentController(svc *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Service: svc}
}

// CreateAssignment 教师为班级布置作业
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssignmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.Service.CreateAssignment(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, assignment)
}

// ListHomeworks 学生作业列表，附最佳成绩
func (c *AssignmentController) ListHomeworks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	homeworks, err := c.Service.ListHomeworks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"homeworks": homeworks})
}

// ClassStats 班级作业完成统计
func (c *AssignmentController) ClassStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	classID, err := strconv.ParseUint(ctx.Param("classId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}

	stats, err := c.Service.ClassStats(claims.UserID, uint(classID))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"assignments": stats})
}
