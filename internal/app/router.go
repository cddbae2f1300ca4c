package app

import (
	"soft_skill_backend/docs"
	"soft_skill_backend/pkg/monitoring"

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

		// 技能目录
		api.GET("/soft-skills", c.softSkill.ListSkills)
		api.GET("/soft-skills/:id", c.softSkill.GetSkill)
		api.GET("/soft-skills/:id/scenarios", c.softSkill.ListScenarios)

		// 练习会话
		api.POST("/practice/start", c.practice.StartPractice)
		api.POST("/practice/submit", c.practice.SubmitPractice)
		api.GET("/practice/:sessionId", c.practice.GetPractice)
		api.GET("/practice/:sessionId/events", c.practice.GetPracticeEvents)

		// 进度
		api.GET("/progress/:userId", c.progress.GetUserProgress)
		api.GET("/progress/:userId/soft-skills/:skillId", c.progress.GetSkillProgress)
	}
}
