package server

import (
	"github.com/gin-gonic/gin"

	"github.com/studyweave/studyweave-backend/internal/http/handlers"
	"github.com/studyweave/studyweave-backend/internal/http/middleware"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthMiddleware  *middleware.AuthMiddleware
	HealthHandler   *handlers.HealthHandler
	ContentHandler  *handlers.ContentHandler
	PathHandler     *handlers.PathHandler
	ProgressHandler *handlers.ProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.TraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/health", cfg.HealthHandler.Health)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireViewer())
	{
		api.POST("/content/resolve", cfg.ContentHandler.Resolve)
		api.POST("/content/validate", cfg.ContentHandler.Validate)
		api.GET("/content/:id", cfg.ContentHandler.ResolveByID)

		api.POST("/objects", cfg.ContentHandler.CreateObject)
		api.DELETE("/objects/:id", cfg.ContentHandler.DeleteObject)
		api.POST("/objects/:id/done", cfg.ContentHandler.MarkDone)

		api.POST("/questions", cfg.ContentHandler.CreateQuestion)

		api.GET("/paths/:id/nodes", cfg.PathHandler.ListNodes)
		api.POST("/paths/:id/nodes", cfg.PathHandler.CreateNode)
		api.PATCH("/paths/:id/nodes/:nodeId", cfg.PathHandler.UpdateNode)
		api.DELETE("/paths/:id/nodes/:nodeId", cfg.PathHandler.DeleteNode)
		api.GET("/paths/:id/content", cfg.PathHandler.ResolveContent)
		api.GET("/external-paths/:id/nodes", cfg.PathHandler.ListExternalPathNodes)

		api.GET("/progress/students/:studentId/paths/:pathId", cfg.ProgressHandler.StudentPathProgress)
		api.GET("/progress/teams/:teamId/paths/:pathId", cfg.ProgressHandler.TeamPathProgress)
		api.GET("/progress/assignments/:assignmentId", cfg.ProgressHandler.AssignmentAverageProgress)
	}

	return router
}
