package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AICallLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Purpose  string    `gorm:"column:purpose;index" json:"purpose"`
	Model    string    `gorm:"column:model" json:"model"`
	ClauseID *uuid.UUID `gorm:"type:uuid;index" json:"clause_id,omitempty"`

	DurationMS       int64  `gorm:"column:duration_ms" json:"duration_ms"`
	PromptTokens     int    `gorm:"column:prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int    `gorm:"column:completion_tokens" json:"completion_tokens"`
	Error            string `gorm:"column:error" json:"error,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_log" }

// BeforeCreate hook to generate UUID
func (l *AICallLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
