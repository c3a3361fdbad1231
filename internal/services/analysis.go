package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/repos"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// AnalysisService runs AI-assisted extraction of temporal and financial
// obligations for clauses, merging results into stored obligations.
type AnalysisService interface {
	AnalyzeClause(ctx context.Context, clauseID uuid.UUID) (*ClauseAnalysis, error)
	AnalyzeContract(ctx context.Context, contractID uuid.UUID) (*BulkAnalysis, error)
}

// ClauseAnalysis reports one clause's merge outcome: everything now attached
// plus how many of the returned items were new.
type ClauseAnalysis struct {
	ClauseID    uuid.UUID           `json:"clause_id"`
	Obligations []*types.Obligation `json:"obligations"`
	Added       int                 `json:"added"`
	Duplicates  int                 `json:"duplicates"`
	Summary     string              `json:"summary,omitempty"`
}

// BulkAnalysis aggregates per-clause outcomes; one failed clause does not
// abort the batch.
type BulkAnalysis struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type analysisService struct {
	db             *gorm.DB
	log            *logger.Logger
	aiClient       AIClient
	clauseRepo     repos.ClauseRepo
	obligationRepo repos.ObligationRepo
	aiCallLogRepo  repos.AICallLogRepo
	parallelism    int
}

func NewAnalysisService(
	db *gorm.DB,
	baseLog *logger.Logger,
	ai AIClient,
	clauseRepo repos.ClauseRepo,
	obligationRepo repos.ObligationRepo,
	aiCallLogRepo repos.AICallLogRepo,
	parallelism int,
) AnalysisService {
	if parallelism <= 0 {
		parallelism = 3
	}
	return &analysisService{
		db:             db,
		log:            baseLog.With("service", "AnalysisService"),
		aiClient:       ai,
		clauseRepo:     clauseRepo,
		obligationRepo: obligationRepo,
		aiCallLogRepo:  aiCallLogRepo,
		parallelism:    parallelism,
	}
}

const analysisSystemPrompt = `You are a construction-contract analyst. Extract obligations from the clause text you are given. Respond with a JSON object:
{
  "summary": "one-paragraph summary",
  "temporal_obligations": [{"text": "...", "source": "general|particular"}],
  "financial_assets": [{"text": "...", "source": "general|particular"}]
}
Entries may be plain strings instead of objects. Only extract obligations actually present in the text.`

func buildAnalysisUserPrompt(c *types.Clause) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Clause %s", c.ClauseNumber)
	if c.ClauseTitle != "" {
		fmt.Fprintf(&b, " (%s)", c.ClauseTitle)
	}
	b.WriteString("\n\n")
	if c.GeneralCondition != "" {
		b.WriteString("General Conditions text:\n")
		b.WriteString(c.GeneralCondition)
		b.WriteString("\n\n")
	}
	if c.ParticularCondition != "" {
		b.WriteString("Particular Conditions text:\n")
		b.WriteString(c.ParticularCondition)
		b.WriteString("\n\n")
	}
	if c.GeneralCondition == "" && c.ParticularCondition == "" {
		b.WriteString(c.ClauseText)
		b.WriteString("\n")
	}
	return b.String()
}

// extractedItem is one obligation candidate parsed out of a provider
// response before merging.
type extractedItem struct {
	Kind   string
	Text   string
	Source string
}

// parseExtraction pulls obligation candidates out of the provider's JSON.
// Entries may be bare strings or objects with text/description fields;
// anything unparseable is skipped, never an error.
func parseExtraction(payload map[string]any) (items []extractedItem, summary string) {
	if s, ok := payload["summary"].(string); ok {
		summary = strings.TrimSpace(s)
	}
	items = append(items, parseItemList(payload["temporal_obligations"], types.ObligationTemporal)...)
	items = append(items, parseItemList(payload["financial_assets"], types.ObligationFinancial)...)
	return items, summary
}

func parseItemList(raw any, kind string) []extractedItem {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var items []extractedItem
	for _, entry := range list {
		switch v := entry.(type) {
		case string:
			if t := strings.TrimSpace(v); t != "" {
				items = append(items, extractedItem{Kind: kind, Text: t})
			}
		case map[string]any:
			text, _ := v["text"].(string)
			if text == "" {
				text, _ = v["description"].(string)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			source, _ := v["source"].(string)
			items = append(items, extractedItem{Kind: kind, Text: text, Source: normalizeSource(source)})
		}
	}
	return items
}

func normalizeSource(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case types.ConditionGeneral:
		return types.ConditionGeneral
	case types.ConditionParticular:
		return types.ConditionParticular
	default:
		return ""
	}
}

// tagSource fills in a missing source by substring containment: an item found
// verbatim in the particular text is tagged particular, otherwise general.
func tagSource(c *types.Clause, item extractedItem) string {
	if item.Source != "" {
		return item.Source
	}
	if c.ParticularCondition != "" && strings.Contains(c.ParticularCondition, item.Text) {
		return types.ConditionParticular
	}
	if c.GeneralCondition != "" && strings.Contains(c.GeneralCondition, item.Text) {
		return types.ConditionGeneral
	}
	return types.ConditionGeneral
}

// mergeObligations drops candidates whose text exactly matches an obligation
// already attached to the clause.
func mergeObligations(c *types.Clause, existing []*types.Obligation, items []extractedItem) (fresh []*types.Obligation, duplicates int) {
	known := make(map[string]bool, len(existing))
	for _, o := range existing {
		known[o.Text] = true
	}
	for _, item := range items {
		if known[item.Text] {
			duplicates++
			continue
		}
		known[item.Text] = true
		// A summary describes the whole clause; it has no single source text.
		source := ""
		if item.Kind != types.ObligationSummary {
			source = tagSource(c, item)
		}
		payload, _ := json.Marshal(map[string]string{"kind": item.Kind})
		fresh = append(fresh, &types.Obligation{
			ClauseID: c.ID,
			Kind:     item.Kind,
			Text:     item.Text,
			Source:   source,
			Payload:  payload,
		})
	}
	return fresh, duplicates
}

func (s *analysisService) AnalyzeClause(ctx context.Context, clauseID uuid.UUID) (*ClauseAnalysis, error) {
	c, err := s.clauseRepo.GetByID(ctx, nil, clauseID)
	if err != nil {
		return nil, fmt.Errorf("load clause: %w", err)
	}

	started := time.Now()
	payload, usage, callErr := s.aiClient.GenerateJSON(ctx, analysisSystemPrompt, buildAnalysisUserPrompt(c))

	entry := &types.AICallLog{
		Purpose:    "clause_analysis",
		Model:      s.aiClient.Model(),
		ClauseID:   &c.ID,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if usage != nil {
		entry.PromptTokens = usage.PromptTokens
		entry.CompletionTokens = usage.CompletionTokens
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	if logErr := s.aiCallLogRepo.Create(ctx, nil, entry); logErr != nil {
		s.log.Warn("Failed to record AI call", "clause_id", clauseID, "error", logErr)
	}
	if callErr != nil {
		return nil, fmt.Errorf("analysis call: %w", callErr)
	}

	items, summary := parseExtraction(payload)
	if summary != "" {
		// The summary is stored alongside the extracted items; re-running an
		// unchanged analysis dedups it like any other obligation.
		items = append(items, extractedItem{Kind: types.ObligationSummary, Text: summary})
	}

	existing, err := s.obligationRepo.GetByClauseID(ctx, nil, c.ID)
	if err != nil {
		return nil, fmt.Errorf("load obligations: %w", err)
	}
	fresh, duplicates := mergeObligations(c, existing, items)
	if _, err := s.obligationRepo.Create(ctx, nil, fresh); err != nil {
		return nil, fmt.Errorf("store obligations: %w", err)
	}

	return &ClauseAnalysis{
		ClauseID:    c.ID,
		Obligations: append(existing, fresh...),
		Added:       len(fresh),
		Duplicates:  duplicates,
		Summary:     summary,
	}, nil
}

// AnalyzeContract analyzes every clause of a contract with bounded
// parallelism. Outcomes are aggregated per clause; result aggregation is
// ordering-independent.
func (s *analysisService) AnalyzeContract(ctx context.Context, contractID uuid.UUID) (*BulkAnalysis, error) {
	clauses, err := s.clauseRepo.GetByContractID(ctx, nil, contractID)
	if err != nil {
		return nil, fmt.Errorf("load clauses: %w", err)
	}

	outcomes := make([]error, len(clauses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, c := range clauses {
		g.Go(func() error {
			_, aErr := s.AnalyzeClause(gctx, c.ID)
			outcomes[i] = aErr
			return nil // individual failures are collected, not fatal
		})
	}
	_ = g.Wait()

	res := &BulkAnalysis{}
	for i, aErr := range outcomes {
		if aErr == nil {
			res.Succeeded++
			continue
		}
		res.Failed++
		res.Errors = append(res.Errors, fmt.Sprintf("clause %s: %v", clauses[i].ClauseNumber, aErr))
	}
	s.log.Info("Bulk analysis finished", "contract_id", contractID, "succeeded", res.Succeeded, "failed", res.Failed)
	return res, nil
}
