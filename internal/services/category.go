package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/cache"
	"github.com/clausedesk/clausedesk-backend/internal/category"
	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/repos"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// CategoryService runs category operations through the in-memory assignment
// engine and writes the engine's projection back in one transaction.
type CategoryService interface {
	CreateCategory(ctx context.Context, contractID uuid.UUID, name string) category.Result
	RenameCategory(ctx context.Context, contractID uuid.UUID, oldName, newName string) category.Result
	DeleteCategory(ctx context.Context, contractID uuid.UUID, name string) category.Result
	AssignClause(ctx context.Context, contractID uuid.UUID, clauseNumber, categoryName string) category.Result
	UnassignClause(ctx context.Context, contractID uuid.UUID, clauseNumber, categoryName string) category.Result
	ShowCategory(ctx context.Context, contractID uuid.UUID, name string) ([]string, category.Result)
	BulkAssign(ctx context.Context, contractID uuid.UUID, clauseNumbers []string, categoryName string) (category.BulkResult, error)
	Reorder(ctx context.Context, contractID uuid.UUID, names []string) category.Result
}

type categoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	cache        cache.ContractCache
	categoryRepo repos.CategoryRepo
	clauseRepo   repos.ClauseRepo
}

func NewCategoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contractCache cache.ContractCache,
	categoryRepo repos.CategoryRepo,
	clauseRepo repos.ClauseRepo,
) CategoryService {
	return &categoryService{
		db:           db,
		log:          baseLog.With("service", "CategoryService"),
		cache:        contractCache,
		categoryRepo: categoryRepo,
		clauseRepo:   clauseRepo,
	}
}

type engineState struct {
	engine     *category.Engine
	categories []*types.Category
	clauses    []*types.Clause
}

func (s *categoryService) loadEngine(ctx context.Context, contractID uuid.UUID) (*engineState, error) {
	categories, err := s.categoryRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	clauses, err := s.clauseRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load clauses: %w", err)
	}

	names := make([]string, 0, len(categories))
	nameByID := make(map[uuid.UUID]string, len(categories))
	categoryIDs := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
		nameByID[c.ID] = c.Name
		categoryIDs = append(categoryIDs, c.ID)
	}

	// The stored member rows are authoritative for insertion order; they come
	// back rank-sorted.
	members, err := s.categoryRepo.GetMembersByCategoryIDs(ctx, nil, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("load category members: %w", err)
	}
	membership := make(map[string][]string, len(categories))
	for _, m := range members {
		name := nameByID[m.CategoryID]
		membership[name] = append(membership[name], m.ClauseNumber)
	}

	return &engineState{
		engine:     category.NewEngineWithMembership(names, clauses, membership),
		categories: categories,
		clauses:    clauses,
	}, nil
}

// persist writes the engine projection back: category rows upserted or
// removed by name, membership rows rewritten, and the denormalized clause
// fields saved. All inside one transaction.
func (s *categoryService) persist(ctx context.Context, contractID uuid.UUID, st *engineState) error {
	projected := st.engine.Categories()
	orderIdx := st.engine.OrderIndex()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]*types.Category, len(st.categories))
		for _, c := range st.categories {
			byName[c.Name] = c
		}
		keep := make(map[string]bool, len(projected))

		for _, p := range projected {
			keep[p.Name] = true
			row, exists := byName[p.Name]
			if !exists {
				row = &types.Category{ContractID: contractID, Name: p.Name}
				if _, err := s.categoryRepo.Create(ctx, tx, row); err != nil {
					return fmt.Errorf("create category %q: %w", p.Name, err)
				}
			}
			if pos, ok := orderIdx[p.Name]; ok {
				posCopy := pos
				row.Position = &posCopy
				if err := s.categoryRepo.Update(ctx, tx, row); err != nil {
					return fmt.Errorf("update category %q: %w", p.Name, err)
				}
			}
			if err := s.categoryRepo.ReplaceMembers(ctx, tx, row.ID, p.ClauseNumbers); err != nil {
				return fmt.Errorf("replace members of %q: %w", p.Name, err)
			}
		}

		for _, c := range st.categories {
			if !keep[c.Name] {
				if err := s.categoryRepo.FullDeleteByID(ctx, tx, c.ID); err != nil {
					return fmt.Errorf("delete category %q: %w", c.Name, err)
				}
			}
		}

		if err := s.clauseRepo.UpdateAll(ctx, tx, st.clauses); err != nil {
			return fmt.Errorf("update clauses: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, contractID)
	return nil
}

// run loads state, applies one engine operation, and persists on success.
func (s *categoryService) run(ctx context.Context, contractID uuid.UUID, op func(*category.Engine) category.Result) category.Result {
	st, err := s.loadEngine(ctx, contractID)
	if err != nil {
		return category.Result{Success: false, Message: err.Error(), Err: err}
	}
	res := op(st.engine)
	if !res.Success {
		return res
	}
	if err := s.persist(ctx, contractID, st); err != nil {
		s.log.Error("Category persist failed", "contract_id", contractID, "error", err)
		return category.Result{Success: false, Message: err.Error(), Err: err}
	}
	return res
}

func (s *categoryService) CreateCategory(ctx context.Context, contractID uuid.UUID, name string) category.Result {
	return s.run(ctx, contractID, func(e *category.Engine) category.Result {
		return e.CreateCategory(name)
	})
}

func (s *categoryService) RenameCategory(ctx context.Context, contractID uuid.UUID, oldName, newName string) category.Result {
	return s.run(ctx, contractID, func(e *category.Engine) category.Result {
		return e.RenameCategory(oldName, newName)
	})
}

func (s *categoryService) DeleteCategory(ctx context.Context, contractID uuid.UUID, name string) category.Result {
	return s.run(ctx, contractID, func(e *category.Engine) category.Result {
		return e.DeleteCategory(name)
	})
}

func (s *categoryService) AssignClause(ctx context.Context, contractID uuid.UUID, clauseNumber, categoryName string) category.Result {
	return s.run(ctx, contractID, func(e *category.Engine) category.Result {
		return e.AddClause(clauseNumber, categoryName)
	})
}

func (s *categoryService) UnassignClause(ctx context.Context, contractID uuid.UUID, clauseNumber, categoryName string) category.Result {
	return s.run(ctx, contractID, func(e *category.Engine) category.Result {
		return e.RemoveClause(clauseNumber, categoryName)
	})
}

func (s *categoryService) ShowCategory(ctx context.Context, contractID uuid.UUID, name string) ([]string, category.Result) {
	st, err := s.loadEngine(ctx, contractID)
	if err != nil {
		return nil, category.Result{Success: false, Message: err.Error(), Err: err}
	}
	return st.engine.ShowCategory(name)
}

// BulkAssign applies the engine's partial-success batch and persists whatever
// succeeded; the per-item counts are reported either way.
func (s *categoryService) BulkAssign(ctx context.Context, contractID uuid.UUID, clauseNumbers []string, categoryName string) (category.BulkResult, error) {
	st, err := s.loadEngine(ctx, contractID)
	if err != nil {
		return category.BulkResult{}, err
	}
	res := st.engine.BulkAssign(clauseNumbers, categoryName)
	if res.Succeeded > 0 {
		if err := s.persist(ctx, contractID, st); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *categoryService) Reorder(ctx context.Context, contractID uuid.UUID, names []string) category.Result {
	return s.run(ctx, contractID, func(e *category.Engine) category.Result {
		return e.SetDisplayOrder(names)
	})
}
