package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, category *types.Category) (*types.Category, error)
	GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*types.Category, error)
	Update(ctx context.Context, tx *gorm.DB, category *types.Category) error
	FullDeleteByID(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) error
	GetMembersByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.CategoryMember, error)
	ReplaceMembers(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, clauseNumbers []string) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, category *types.Category) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) GetByContractID(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) ([]*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Category
	if err := transaction.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("position ASC NULLS LAST, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *categoryRepo) Update(ctx context.Context, tx *gorm.DB, category *types.Category) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(category).Error
}

// FullDeleteByID removes the category and its membership rows. Clause records
// are untouched; the service layer clears their denormalized field.
func (r *categoryRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&types.CategoryMember{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).
		Unscoped().
		Where("id = ?", categoryID).
		Delete(&types.Category{}).Error
}

func (r *categoryRepo) GetMembersByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.CategoryMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CategoryMember
	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Order("rank ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceMembers rewrites a category's membership rows from the engine's
// projection, ranks following list order.
func (r *categoryRepo) ReplaceMembers(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, clauseNumbers []string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&types.CategoryMember{}).Error; err != nil {
		return err
	}
	if len(clauseNumbers) == 0 {
		return nil
	}
	members := make([]*types.CategoryMember, 0, len(clauseNumbers))
	for i, n := range clauseNumbers {
		members = append(members, &types.CategoryMember{
			CategoryID:   categoryID,
			ClauseNumber: n,
			Rank:         i,
		})
	}
	return transaction.WithContext(ctx).Create(&members).Error
}
