package app

import (
	"trig_quiz_backend/internal/config"
	"trig_quiz_backend/internal/middleware"
	"trig_quiz_backend/internal/model"
	"trig_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/ping", c.health.Ping)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/statistics", c.statistics.GetStatistics)

		// 学生接口
		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/start_homework/:assignmentId", c.quiz.StartHomework)
			student.GET("/question", c.quiz.GetQuestion)
			student.POST("/submit_answer", c.quiz.SubmitAnswer)

			student.POST("/start_practice", c.quiz.StartPractice)
			student.GET("/practice_question", c.quiz.GetPracticeQuestion)
			student.POST("/submit_practice_answer", c.quiz.SubmitPracticeAnswer)
			student.POST("/end_practice", c.quiz.EndPractice)

			student.GET("/homeworks", c.assignment.ListHomeworks)
			student.GET("/join/class/:code", c.class.JoinByCode)
		}

		// 教师接口
		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/classes", c.class.CreateClass)
			teacher.GET("/classes", c.class.ListClasses)
			teacher.GET("/classes/:id/join-link", c.class.JoinLink)
			teacher.GET("/classes/:id/students", c.class.ListStudents)

			teacher.POST("/assignments", c.assignment.CreateAssignment)
			teacher.GET("/assignments/:classId", c.assignment.ClassStats)
		}
	}
}
