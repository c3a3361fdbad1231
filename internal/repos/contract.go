package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type ContractRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error)
	GetByID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.Contract, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Contract, error)
	Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	repoLog := baseLog.With("repo", "ContractRepo")
	return &contractRepo{db: db, log: repoLog}
}

func (r *contractRepo) Create(ctx context.Context, tx *gorm.DB, contract *types.Contract) (*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepo) GetByID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Contract
	if err := transaction.WithContext(ctx).
		Where("id = ?", contractID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contractRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Contract
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contractRepo) Update(ctx context.Context, tx *gorm.DB, contract *types.Contract) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(contract).Error
}

func (r *contractRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", contractID).
		Delete(&types.Contract{}).Error
}
