package app

import (
	"career_agent_backend/docs"
	"career_agent_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 聊天与会话
		api.POST("/chat", c.chat.Chat)
		api.GET("/chat/history", c.chat.History)
		api.GET("/chat/sessions", c.chat.ListSessions)
		api.POST("/chat/sessions", c.chat.CreateSession)
		api.PUT("/chat/sessions/:session_id/activate", c.chat.ActivateSession)
		api.DELETE("/chat/sessions/:session_id", c.chat.DeleteSession)

		// 仪表盘与活动
		api.GET("/dashboard", c.dashboard.Stats)
		api.GET("/activity", c.activity.Recent)

		// 职位
		api.GET("/jobs", c.job.List)
		api.POST("/jobs/:job_id/apply", c.job.Apply)
		api.PUT("/jobs/:job_id/status", c.job.UpdateStatus)

		// 学习
		api.GET("/learning", c.learning.Latest)
		api.GET("/learning/all", c.learning.All)

		// 测验。/tests/results 是静态段，匹配优先于 :test_id
		api.GET("/tests", c.test.List)
		api.GET("/tests/results", c.test.Results)
		api.GET("/tests/:test_id", c.test.Get)
		api.POST("/tests/:test_id/submit", c.test.Submit)

		// 简历
		api.GET("/resume", c.resume.Latest)
		api.POST("/resume/upload", c.resume.Upload)

		// 档案
		api.GET("/profile", c.profile.Get)
		api.PUT("/profile", c.profile.Update)
		api.PUT("/profile/preferences/:key", c.profile.SetPreference)
	}
}
