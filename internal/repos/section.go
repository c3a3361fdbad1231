package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type SectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sections []*types.ContractSection) error
	GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*types.ContractSection, error)
	GetItemsBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionItem, error)
	ReplaceItems(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, items []*types.SectionItem) error
}

type sectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSectionRepo(db *gorm.DB, baseLog *logger.Logger) SectionRepo {
	repoLog := baseLog.With("repo", "SectionRepo")
	return &sectionRepo{db: db, log: repoLog}
}

func (r *sectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.ContractSection) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sections) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&sections).Error
}

func (r *sectionRepo) GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*types.ContractSection, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContractSection
	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sectionRepo) GetItemsBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SectionItem
	if len(sectionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceItems rewrites a section's item rows, positions following list order.
func (r *sectionRepo) ReplaceItems(ctx context.Context, tx *gorm.DB, sectionID uuid.UUID, items []*types.SectionItem) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Delete(&types.SectionItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i, item := range items {
		item.SectionID = sectionID
		item.Position = i
	}
	return transaction.WithContext(ctx).Create(&items).Error
}
