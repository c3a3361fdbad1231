package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type ClauseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, clauses []*types.Clause) ([]*types.Clause, error)
	GetByID(ctx context.Context, tx *gorm.DB, clauseID uuid.UUID) (*types.Clause, error)
	GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*types.Clause, error)
	Update(ctx context.Context, tx *gorm.DB, c *types.Clause) error
	UpdateAll(ctx context.Context, tx *gorm.DB, clauses []*types.Clause) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) error
}

type clauseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClauseRepo(db *gorm.DB, baseLog *logger.Logger) ClauseRepo {
	repoLog := baseLog.With("repo", "ClauseRepo")
	return &clauseRepo{db: db, log: repoLog}
}

func (r *clauseRepo) Create(ctx context.Context, tx *gorm.DB, clauses []*types.Clause) ([]*types.Clause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clauses) == 0 {
		return []*types.Clause{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&clauses).Error; err != nil {
		return nil, err
	}
	return clauses, nil
}

func (r *clauseRepo) GetByID(ctx context.Context, tx *gorm.DB, clauseID uuid.UUID) (*types.Clause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Clause
	if err := transaction.WithContext(ctx).
		Where("id = ?", clauseID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *clauseRepo) GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*types.Clause, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Clause
	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *clauseRepo) Update(ctx context.Context, tx *gorm.DB, c *types.Clause) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(c).Error
}

// UpdateAll saves clauses strictly sequentially so callers get deterministic
// side-effect ordering for bulk operations.
func (r *clauseRepo) UpdateAll(ctx context.Context, tx *gorm.DB, clauses []*types.Clause) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	for _, c := range clauses {
		if err := transaction.WithContext(ctx).Save(c).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *clauseRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clauseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", clauseIDs).
		Delete(&types.Clause{}).Error
}

func (r *clauseRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, clauseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(clauseIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", clauseIDs).
		Delete(&types.Clause{}).Error
}
