package controller

import (
	"errors"
	"strconv"
	"trig_quiz_backend/internal/service"
	"trig_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	Service *service.ClassService
}

func NewClassController(svc *service.ClassService) *ClassController {
	return &ClassController{Service: svc}
}

type CreateClassRequest struct {
	ClassName string `json:"class_name" binding:"required"`
}

// CreateClass 教师创建班级
func (c *ClassController) CreateClass(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.Service.CreateClass(claims.UserID, req.ClassName)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, class)
}

// ListClasses 教师的班级列表，含学生与作业
func (c *ClassController) ListClasses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	classes, err := c.Service.ListByTeacher(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"classes": classes})
}

// JoinLink 班级邀请码
func (c *ClassController) JoinLink(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	classID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}

	code, err := c.Service.JoinLink(claims.UserID, uint(classID))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"join_code": code})
}

// ListStudents 班级学生名单
func (c *ClassController) ListStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	classID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}

	students, err := c.Service.ListStudents(claims.UserID, uint(classID))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"students": students})
}

// JoinByCode 学生凭邀请码入班
func (c *ClassController) JoinByCode(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	class, err := c.Service.JoinByCode(claims.UserID, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "joined class", "class_id": class.ID})
}
