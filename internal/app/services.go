package app

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/cache"
	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/services"
)

type Services struct {
	Contract  services.ContractService
	Clause    services.ClauseService
	Category  services.CategoryService
	Analysis  services.AnalysisService
	Import    services.ImportService
	Autosaver *services.Autosaver
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, contractCache cache.ContractCache) (Services, error) {
	log.Info("Wiring services...")

	aiClient, err := services.NewAIClient(log)
	if err != nil {
		return Services{}, err
	}
	ocrClient := services.NewOCRClient(log)

	contractService := services.NewContractService(db, log, contractCache, reposet.Contract, reposet.Section, reposet.Clause, reposet.Category)
	clauseService := services.NewClauseService(db, log, contractCache, reposet.Clause, reposet.Section, reposet.Category)
	categoryService := services.NewCategoryService(db, log, contractCache, reposet.Category, reposet.Clause)
	analysisService := services.NewAnalysisService(db, log, aiClient, reposet.Clause, reposet.Obligation, reposet.AICallLog, cfg.AnalysisParallelism)
	importService := services.NewImportService(log, ocrClient)

	autosaver := services.NewAutosaver(log, cfg.AutosaveDelay, func(ctx context.Context, clauseID uuid.UUID, patch services.ClausePatch) error {
		_, err := clauseService.UpdateClause(ctx, clauseID, patch)
		return err
	})

	return Services{
		Contract:  contractService,
		Clause:    clauseService,
		Category:  categoryService,
		Analysis:  analysisService,
		Import:    importService,
		Autosaver: autosaver,
	}, nil
}
