package controller

import (
	"errors"
	"net/http"
	"strconv"
	"trig_quiz_backend/internal/service"
	"trig_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// StartHomework 开始一次作业测验，返回每题作答秒数供前端倒计时
func (c *QuizController) StartHomework(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assignmentID, err := strconv.ParseUint(ctx.Param("assignmentId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	timeLimit, err := c.Service.StartTest(ctx.Request.Context(), claims.UserID, uint(assignmentID))
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"question_time_limit": timeLimit})
}

// GetQuestion 下发一道限时题
func (c *QuizController) GetQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	payload, err := c.Service.IssueQuestion(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, payload)
}

// SubmitAnswer 判定当前题
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	correct, err := c.Service.SubmitAnswer(ctx.Request.Context(), claims.UserID, req.Answer)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"is_correct": correct})
}

// StartPractice 开始自由练习
func (c *QuizController) StartPractice(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.StartPractice(ctx.Request.Context(), claims.UserID); err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "practice session started"})
}

// GetPracticeQuestion 下发一道不限时的练习题
func (c *QuizController) GetPracticeQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	payload, err := c.Service.IssuePracticeQuestion(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, payload)
}

// SubmitPracticeAnswer 判定练习题
func (c *QuizController) SubmitPracticeAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	correct, err := c.Service.SubmitPracticeAnswer(ctx.Request.Context(), claims.UserID, req.Answer)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"is_correct": correct})
}

// EndPractice 结束练习并返回最终计数
func (c *QuizController) EndPractice(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	correct, total, err := c.Service.EndPractice(ctx.Request.Context(), claims.UserID)
	if err != nil {
		c.writeQuizError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message":         "practice session finished",
		"correct_answers": correct,
		"total_questions": total,
	})
}

func (c *QuizController) writeQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssignmentNotFound),
		errors.Is(err, util.ErrTestNotStarted),
		errors.Is(err, util.ErrNoActiveQuestion),
		errors.Is(err, util.ErrPracticeNotStarted):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrQuestionExpired):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptUsed):
		util.Error(ctx, http.StatusForbidden, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
