package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/clausedesk/clausedesk-backend/internal/handlers"
	"github.com/clausedesk/clausedesk-backend/internal/middleware"
)

type RouterConfig struct {
	RequestLogger      *middleware.RequestLogger
	HealthcheckHandler *handlers.HealthcheckHandler
	ContractHandler    *handlers.ContractHandler
	ClauseHandler      *handlers.ClauseHandler
	CategoryHandler    *handlers.CategoryHandler
	AnalysisHandler    *handlers.AnalysisHandler
	ImportHandler      *handlers.ImportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cfg.RequestLogger.Log())

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
		api.GET("/import/health", cfg.ImportHandler.Health)

		// Contracts
		api.POST("/contracts", cfg.ContractHandler.CreateContract)
		api.GET("/contracts", cfg.ContractHandler.ListContracts)
		api.GET("/contracts/:id", cfg.ContractHandler.GetContract)
		api.DELETE("/contracts/:id", cfg.ContractHandler.DeleteContract)
		api.GET("/contracts/:id/unified", cfg.ContractHandler.GetUnifiedView)
		api.POST("/contracts/:id/split", cfg.ContractHandler.SplitAndSave)

		// Clauses
		api.GET("/contracts/:id/clauses", cfg.ClauseHandler.ListClauses)
		api.POST("/contracts/:id/clauses/import", cfg.ClauseHandler.ImportDetected)
		api.PATCH("/clauses/:clauseId", cfg.ClauseHandler.UpdateClause)
		api.POST("/clauses/:clauseId/flush", cfg.ClauseHandler.FlushClause)

		// Categories
		api.POST("/contracts/:id/categories", cfg.CategoryHandler.CreateCategory)
		api.GET("/contracts/:id/categories/:name", cfg.CategoryHandler.ShowCategory)
		api.PATCH("/contracts/:id/categories/:name", cfg.CategoryHandler.RenameCategory)
		api.DELETE("/contracts/:id/categories/:name", cfg.CategoryHandler.DeleteCategory)
		api.POST("/contracts/:id/categories/assign", cfg.CategoryHandler.AssignClause)
		api.POST("/contracts/:id/categories/unassign", cfg.CategoryHandler.UnassignClause)
		api.POST("/contracts/:id/categories/bulk-assign", cfg.CategoryHandler.BulkAssign)
		api.PUT("/contracts/:id/categories/order", cfg.CategoryHandler.Reorder)

		// Analysis
		api.POST("/clauses/:clauseId/analyze", cfg.AnalysisHandler.AnalyzeClause)
		api.POST("/contracts/:id/analyze", cfg.AnalysisHandler.AnalyzeContract)

		// Import
		api.POST("/contracts/:id/import", cfg.ImportHandler.ExtractDocument)
		api.POST("/contracts/:id/import/detect", cfg.ImportHandler.DetectClauses)
	}

	return router
}
