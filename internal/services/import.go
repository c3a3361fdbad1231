package services

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
)

// ImportState is the explicit bulk-import flow state; it travels with the
// session rather than living in ambient globals.
type ImportState string

const (
	ImportStateInput     ImportState = "input"
	ImportStateDetecting ImportState = "detecting"
	ImportStateReview    ImportState = "review"
)

// ImportSession holds one bulk-import run from raw text to reviewed drafts.
type ImportSession struct {
	ContractID uuid.UUID       `json:"contract_id"`
	State      ImportState     `json:"state"`
	RawText    string          `json:"raw_text,omitempty"`
	Drafts     []*types.Clause `json:"drafts,omitempty"`
}

// ImportService turns uploaded contract documents into draft clause records
// ready for review.
type ImportService interface {
	HealthCheck(ctx context.Context) error
	ExtractDocument(ctx context.Context, contractID uuid.UUID, filename string, content io.Reader) (*ImportSession, error)
	DetectClauses(session *ImportSession, conditionType string) *ImportSession
}

type importService struct {
	log *logger.Logger
	ocr OCRClient
}

func NewImportService(baseLog *logger.Logger, ocr OCRClient) ImportService {
	return &importService{
		log: baseLog.With("service", "ImportService"),
		ocr: ocr,
	}
}

func (s *importService) HealthCheck(ctx context.Context) error {
	return s.ocr.Health(ctx)
}

func (s *importService) ExtractDocument(ctx context.Context, contractID uuid.UUID, filename string, content io.Reader) (*ImportSession, error) {
	result, err := s.ocr.ExtractText(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}
	text := result.Text
	if text == "" {
		text = strings.Join(result.Lines, "\n")
	}
	return &ImportSession{
		ContractID: contractID,
		State:      ImportStateInput,
		RawText:    text,
	}, nil
}

// clauseHeadingRe matches a line opening with a clause number, optionally
// followed by a title: "14.1 Contract Price", "4.1(a) Design obligations".
var clauseHeadingRe = regexp.MustCompile(`^\s*([0-9]+[A-Za-z]?(?:\.[0-9]+[A-Za-z]?)*(?:\s*\([A-Za-z0-9]+\))?)[.\s]+(.*)$`)

// DetectClauses scans the session's raw text for clause headings and carries
// the session through detecting into review. Lines before the first heading
// are dropped; everything between two headings becomes the clause body.
func (s *importService) DetectClauses(session *ImportSession, conditionType string) *ImportSession {
	session.State = ImportStateDetecting

	if conditionType != types.ConditionParticular {
		conditionType = types.ConditionGeneral
	}

	var drafts []*types.Clause
	var current *types.Clause
	var body []string

	finish := func() {
		if current == nil {
			return
		}
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if conditionType == types.ConditionGeneral {
			current.GeneralCondition = text
		} else {
			current.ParticularCondition = text
		}
		drafts = append(drafts, current)
	}

	for _, line := range strings.Split(session.RawText, "\n") {
		m := clauseHeadingRe.FindStringSubmatch(line)
		if m != nil {
			finish()
			current = &types.Clause{
				ContractID:    session.ContractID,
				ClauseNumber:  strings.TrimSpace(m[1]),
				ClauseTitle:   strings.TrimSpace(m[2]),
				ConditionType: conditionType,
			}
			body = body[:0]
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	finish()

	for i, d := range drafts {
		d.Position = i
	}
	session.Drafts = drafts
	session.State = ImportStateReview
	s.log.Info("Clause detection finished", "contract_id", session.ContractID, "drafts", len(drafts))
	return session
}
