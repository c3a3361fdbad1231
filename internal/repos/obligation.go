package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type ObligationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, obligations []*types.Obligation) ([]*types.Obligation, error)
	GetByClauseID(ctx context.Context, tx *gorm.DB, clauseID uuid.UUID) ([]*types.Obligation, error)
	GetByClauseIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) ([]*types.Obligation, error)
	SoftDeleteByClauseIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) error
}

type obligationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewObligationRepo(db *gorm.DB, baseLog *logger.Logger) ObligationRepo {
	repoLog := baseLog.With("repo", "ObligationRepo")
	return &obligationRepo{db: db, log: repoLog}
}

func (r *obligationRepo) Create(ctx context.Context, tx *gorm.DB, obligations []*types.Obligation) ([]*types.Obligation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(obligations) == 0 {
		return []*types.Obligation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&obligations).Error; err != nil {
		return nil, err
	}
	return obligations, nil
}

func (r *obligationRepo) GetByClauseID(ctx context.Context, tx *gorm.DB, clauseID uuid.UUID) ([]*types.Obligation, error) {
	return r.GetByClauseIDs(ctx, tx, []uuid.UUID{clauseID})
}

func (r *obligationRepo) GetByClauseIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) ([]*types.Obligation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Obligation
	if len(clauseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("clause_id IN ?", clauseIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *obligationRepo) SoftDeleteByClauseIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clauseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("clause_id IN ?", clauseIDs).
		Delete(&types.Obligation{}).Error
}
