package app

import (
	"github.com/clausedesk/clausedesk-backend/internal/handlers"
	"github.com/clausedesk/clausedesk-backend/internal/logger"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Contract    *handlers.ContractHandler
	Clause      *handlers.ClauseHandler
	Category    *handlers.CategoryHandler
	Analysis    *handlers.AnalysisHandler
	Import      *handlers.ImportHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Contract:    handlers.NewContractHandler(log, serviceset.Contract, serviceset.Clause),
		Clause:      handlers.NewClauseHandler(log, serviceset.Clause, serviceset.Autosaver),
		Category:    handlers.NewCategoryHandler(log, serviceset.Category),
		Analysis:    handlers.NewAnalysisHandler(log, serviceset.Analysis),
		Import:      handlers.NewImportHandler(log, serviceset.Import),
	}
}
