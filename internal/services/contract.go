package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/cache"
	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/repos"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// ContractService is the storage collaborator boundary: load assembles the
// full contract record (cache-aside), save persists and invalidates.
type ContractService interface {
	Create(ctx context.Context, name string) (*types.Contract, error)
	List(ctx context.Context) ([]*types.Contract, error)
	Load(ctx context.Context, contractID uuid.UUID) (*cache.ContractRecord, error)
	Delete(ctx context.Context, contractID uuid.UUID) error
	SaveClauses(ctx context.Context, contractID uuid.UUID, clauses []*types.Clause) (*BulkSave, error)
}

// BulkSave reports per-item outcomes of a sequential bulk save.
type BulkSave struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	cache        cache.ContractCache
	contractRepo repos.ContractRepo
	sectionRepo  repos.SectionRepo
	clauseRepo   repos.ClauseRepo
	categoryRepo repos.CategoryRepo
}

func NewContractService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contractCache cache.ContractCache,
	contractRepo repos.ContractRepo,
	sectionRepo repos.SectionRepo,
	clauseRepo repos.ClauseRepo,
	categoryRepo repos.CategoryRepo,
) ContractService {
	return &contractService{
		db:           db,
		log:          baseLog.With("service", "ContractService"),
		cache:        contractCache,
		contractRepo: contractRepo,
		sectionRepo:  sectionRepo,
		clauseRepo:   clauseRepo,
		categoryRepo: categoryRepo,
	}
}

// Create makes the contract together with its two source sections.
func (s *contractService) Create(ctx context.Context, name string) (*types.Contract, error) {
	contract := &types.Contract{
		Name:   name,
		Status: types.ContractStatusPending,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.contractRepo.Create(ctx, tx, contract); err != nil {
			return err
		}
		sections := []*types.ContractSection{
			{ContractID: contract.ID, Name: "General Conditions", Kind: types.SectionKindGeneral, Position: 0},
			{ContractID: contract.ID, Name: "Particular Conditions", Kind: types.SectionKindParticular, Position: 1},
		}
		return s.sectionRepo.Create(ctx, tx, sections)
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *contractService) List(ctx context.Context) ([]*types.Contract, error) {
	return s.contractRepo.List(ctx, nil)
}

func (s *contractService) Load(ctx context.Context, contractID uuid.UUID) (*cache.ContractRecord, error) {
	if record, hit := s.cache.Get(ctx, contractID); hit {
		return record, nil
	}

	contract, err := s.contractRepo.GetByID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	sections, err := s.sectionRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}
	sectionIDs := make([]uuid.UUID, 0, len(sections))
	for _, sec := range sections {
		sectionIDs = append(sectionIDs, sec.ID)
	}
	items, err := s.sectionRepo.GetItemsBySectionIDs(ctx, nil, sectionIDs)
	if err != nil {
		return nil, fmt.Errorf("load section items: %w", err)
	}
	items = s.knownItems(items)
	clauses, err := s.clauseRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load clauses: %w", err)
	}
	categories, err := s.categoryRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		categoryIDs = append(categoryIDs, c.ID)
	}
	members, err := s.categoryRepo.GetMembersByCategoryIDs(ctx, nil, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("load category members: %w", err)
	}

	record := &cache.ContractRecord{
		Contract:   *contract,
		Sections:   sections,
		Items:      items,
		Clauses:    clauses,
		Categories: categories,
		Members:    members,
	}
	s.cache.Set(ctx, record)
	return record, nil
}

// knownItems keeps the item variants the views understand. Rows with an
// unrecognized discriminant are dropped rather than passed through untyped.
func (s *contractService) knownItems(items []*types.SectionItem) []*types.SectionItem {
	out := make([]*types.SectionItem, 0, len(items))
	for _, item := range items {
		switch item.ItemType {
		case types.ItemTypeClause, types.ItemTypeParagraph, types.ItemTypeField, types.ItemTypeImage:
			out = append(out, item)
		default:
			s.log.Warn("Dropping section item of unknown type", "item_id", item.ID, "item_type", item.ItemType)
		}
	}
	return out
}

func (s *contractService) Delete(ctx context.Context, contractID uuid.UUID) error {
	if err := s.contractRepo.SoftDeleteByID(ctx, nil, contractID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, contractID)
	return nil
}

// SaveClauses persists edited clauses one at a time, collecting per-item
// outcomes instead of aborting on the first failure.
func (s *contractService) SaveClauses(ctx context.Context, contractID uuid.UUID, clauses []*types.Clause) (*BulkSave, error) {
	res := &BulkSave{}
	for _, c := range clauses {
		if err := s.clauseRepo.Update(ctx, nil, c); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("clause %s: %v", c.ClauseNumber, err))
			continue
		}
		res.Succeeded++
	}
	s.cache.Invalidate(ctx, contractID)
	return res, nil
}
