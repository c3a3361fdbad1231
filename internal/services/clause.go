package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/cache"
	"github.com/clausedesk/clausedesk-backend/internal/clause"
	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/repos"
	"github.com/clausedesk/clausedesk-backend/internal/section"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// ClauseService assembles display views (grouped, tokenized, unified) and
// persists edits flowing back from them.
type ClauseService interface {
	GetClauses(ctx context.Context, contractID uuid.UUID) ([]*types.Clause, error)
	GetGrouped(ctx context.Context, contractID uuid.UUID, highlightKeywords []string) ([]GroupView, error)
	GetUnified(ctx context.Context, contractID uuid.UUID, mode section.SortMode) ([]UnifiedItemView, error)
	UpdateClause(ctx context.Context, clauseID uuid.UUID, patch ClausePatch) (*types.Clause, error)
	SplitAndSave(ctx context.Context, contractID uuid.UUID, unified []*types.Clause) (*BulkSave, error)
	ImportDetected(ctx context.Context, contractID uuid.UUID, detected []*types.Clause) ([]*types.Clause, error)
}

// GroupView is one parent clause with its sub-clauses and the tokenized body
// used for cross-reference navigation.
type GroupView struct {
	Key        string          `json:"key"`
	Anchor     string          `json:"anchor"`
	Parent     *types.Clause   `json:"parent"`
	SubClauses []*types.Clause `json:"sub_clauses,omitempty"`
	Synthetic  bool            `json:"synthetic,omitempty"`
	BodyTokens []clause.Token  `json:"body_tokens"`
}

type UnifiedItemView struct {
	Clause *types.Clause `json:"clause"`
	Status string        `json:"status,omitempty"`
	Anchor string        `json:"anchor"`
}

// ClausePatch carries the editable clause fields; nil means unchanged.
type ClausePatch struct {
	ClauseTitle         *string `json:"clause_title,omitempty"`
	GeneralCondition    *string `json:"general_condition,omitempty"`
	ParticularCondition *string `json:"particular_condition,omitempty"`
	ClauseText          *string `json:"clause_text,omitempty"`
}

type clauseService struct {
	db           *gorm.DB
	log          *logger.Logger
	cache        cache.ContractCache
	clauseRepo   repos.ClauseRepo
	sectionRepo  repos.SectionRepo
	categoryRepo repos.CategoryRepo
}

func NewClauseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contractCache cache.ContractCache,
	clauseRepo repos.ClauseRepo,
	sectionRepo repos.SectionRepo,
	categoryRepo repos.CategoryRepo,
) ClauseService {
	return &clauseService{
		db:           db,
		log:          baseLog.With("service", "ClauseService"),
		cache:        contractCache,
		clauseRepo:   clauseRepo,
		sectionRepo:  sectionRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *clauseService) GetClauses(ctx context.Context, contractID uuid.UUID) ([]*types.Clause, error) {
	return s.clauseRepo.GetByContractID(ctx, nil, contractID)
}

func (s *clauseService) GetGrouped(ctx context.Context, contractID uuid.UUID, highlightKeywords []string) ([]GroupView, error) {
	clauses, err := s.clauseRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, 0, len(clauses))
	for _, c := range clauses {
		numbers = append(numbers, c.ClauseNumber)
	}
	known := clause.KnownSet(numbers)

	groups := clause.GroupClauses(clauses)
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		body := g.Parent.Body()
		if len(highlightKeywords) > 0 {
			body = clause.Highlight(body, highlightKeywords)
		}
		views = append(views, GroupView{
			Key:        g.Key,
			Anchor:     clause.Anchor(g.Key),
			Parent:     g.Parent,
			SubClauses: g.SubClauses,
			Synthetic:  g.Synthetic,
			BodyTokens: clause.Tokenize(body, known),
		})
	}
	return views, nil
}

func (s *clauseService) GetUnified(ctx context.Context, contractID uuid.UUID, mode section.SortMode) ([]UnifiedItemView, error) {
	clauses, err := s.clauseRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int, len(categories))
	for i, c := range categories {
		order[c.Name] = i
	}

	sorted := section.Sort(clauses, mode, order)
	views := make([]UnifiedItemView, 0, len(sorted))
	for _, c := range sorted {
		views = append(views, UnifiedItemView{
			Clause: c,
			Status: section.StatusLabel(c),
			Anchor: clause.Anchor(c.ClauseNumber),
		})
	}
	return views, nil
}

func (s *clauseService) UpdateClause(ctx context.Context, clauseID uuid.UUID, patch ClausePatch) (*types.Clause, error) {
	c, err := s.clauseRepo.GetByID(ctx, nil, clauseID)
	if err != nil {
		return nil, fmt.Errorf("load clause: %w", err)
	}
	if patch.ClauseTitle != nil {
		c.ClauseTitle = *patch.ClauseTitle
	}
	if patch.GeneralCondition != nil {
		c.GeneralCondition = *patch.GeneralCondition
	}
	if patch.ParticularCondition != nil {
		c.ParticularCondition = *patch.ParticularCondition
	}
	if patch.ClauseText != nil {
		c.ClauseText = *patch.ClauseText
	}
	if err := s.clauseRepo.Update(ctx, nil, c); err != nil {
		return nil, fmt.Errorf("save clause: %w", err)
	}
	s.cache.Invalidate(ctx, c.ContractID)
	return c, nil
}

// SplitAndSave reconciles an edited unified view back into the General and
// Particular collections and persists each item sequentially.
func (s *clauseService) SplitAndSave(ctx context.Context, contractID uuid.UUID, unified []*types.Clause) (*BulkSave, error) {
	general, particular := section.Split(unified)

	res := &BulkSave{}
	save := func(items []*types.Clause) {
		for _, c := range items {
			c.ContractID = contractID
			if err := s.clauseRepo.Update(ctx, nil, c); err != nil {
				res.Failed++
				res.Errors = append(res.Errors, fmt.Sprintf("clause %s: %v", c.ClauseNumber, err))
				continue
			}
			res.Succeeded++
		}
	}
	save(general)
	save(particular)

	s.cache.Invalidate(ctx, contractID)
	return res, nil
}

// ImportDetected merges bulk-detected clauses into one record per parent
// group (sub-clause text aggregated field-by-field onto the parent) and
// stores the result.
func (s *clauseService) ImportDetected(ctx context.Context, contractID uuid.UUID, detected []*types.Clause) ([]*types.Clause, error) {
	groups := clause.GroupClauses(detected)

	merged := make([]*types.Clause, 0, len(groups))
	for i, g := range groups {
		m := clause.MergeGroupText(g)
		m.ContractID = contractID
		m.Position = i
		if m.ConditionType == "" && m.ClauseText != "" && m.GeneralCondition == "" {
			// Legacy single-section records migrate into General.
			m.ConditionType = types.ConditionGeneral
			m.GeneralCondition = m.ClauseText
		}
		merged = append(merged, m)
	}

	stored, err := s.clauseRepo.Create(ctx, nil, merged)
	if err != nil {
		return nil, fmt.Errorf("store detected clauses: %w", err)
	}
	if err := s.rewriteSectionItems(ctx, contractID, stored); err != nil {
		s.log.Warn("Section item rewrite failed", "contract_id", contractID, "error", err)
	}
	s.cache.Invalidate(ctx, contractID)
	return stored, nil
}

// rewriteSectionItems rebuilds the clause item rows of each source section
// from the stored clause list, keyed by condition type.
func (s *clauseService) rewriteSectionItems(ctx context.Context, contractID uuid.UUID, stored []*types.Clause) error {
	sections, err := s.sectionRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return err
	}
	byKind := make(map[string]*types.ContractSection, len(sections))
	for _, sec := range sections {
		switch sec.Kind {
		case types.SectionKindGeneral, types.SectionKindParticular:
			byKind[sec.Kind] = sec
		case types.SectionKindOther:
			// Free-form sections never receive clause items.
		}
	}

	itemsByKind := make(map[string][]*types.SectionItem)
	for _, c := range stored {
		kind := types.SectionKindGeneral
		if c.ConditionType == types.ConditionParticular {
			kind = types.SectionKindParticular
		}
		clauseID := c.ID
		itemsByKind[kind] = append(itemsByKind[kind], &types.SectionItem{
			ItemType: types.ItemTypeClause,
			ClauseID: &clauseID,
		})
	}

	for kind, items := range itemsByKind {
		sec, exists := byKind[kind]
		if !exists {
			continue
		}
		if err := s.sectionRepo.ReplaceItems(ctx, nil, sec.ID, items); err != nil {
			return err
		}
	}
	return nil
}
