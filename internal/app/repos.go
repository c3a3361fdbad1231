package app

import (
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/repos"
)

type Repos struct {
	Contract   repos.ContractRepo
	Section    repos.SectionRepo
	Clause     repos.ClauseRepo
	Category   repos.CategoryRepo
	Obligation repos.ObligationRepo
	AICallLog  repos.AICallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Contract:   repos.NewContractRepo(db, log),
		Section:    repos.NewSectionRepo(db, log),
		Clause:     repos.NewClauseRepo(db, log),
		Category:   repos.NewCategoryRepo(db, log),
		Obligation: repos.NewObligationRepo(db, log),
		AICallLog:  repos.NewAICallLogRepo(db, log),
	}
}
