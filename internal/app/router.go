package app

import (
	"github.com/gin-gonic/gin"

	"github.com/clausedesk/clausedesk-backend/internal/server"
)

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		RequestLogger:      middlewareset.RequestLogger,
		HealthcheckHandler: handlerset.Healthcheck,
		ContractHandler:    handlerset.Contract,
		ClauseHandler:      handlerset.Clause,
		CategoryHandler:    handlerset.Category,
		AnalysisHandler:    handlerset.Analysis,
		ImportHandler:      handlerset.Import,
	})
}
