package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConditionType says which source document contributed a clause record when a
// contract has no unified General/Particular split.
const (
	ConditionGeneral    = "general"
	ConditionParticular = "particular"
)

type Clause struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID  `gorm:"type:uuid;not null;index" json:"contract_id"`
	SectionID  *uuid.UUID `gorm:"type:uuid;index" json:"section_id,omitempty"`

	ClauseNumber  string `gorm:"column:clause_number;not null;index" json:"clause_number"`
	ClauseTitle   string `gorm:"column:clause_title" json:"clause_title,omitempty"`
	ConditionType string `gorm:"column:condition_type" json:"condition_type,omitempty"`

	// Dual-source text. A clause may have one, both, or neither populated;
	// ClauseText is the unified fallback.
	GeneralCondition    string `gorm:"column:general_condition;type:text" json:"general_condition,omitempty"`
	ParticularCondition string `gorm:"column:particular_condition;type:text" json:"particular_condition,omitempty"`
	ClauseText          string `gorm:"column:clause_text;type:text" json:"clause_text,omitempty"`

	// Category is a denormalized projection of the category_member table.
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   string     `gorm:"column:category" json:"category,omitempty"`

	// Origin tags which collection the clause came from in the unified
	// Conditions view. Empty for clauses added directly in that view.
	Origin   string `gorm:"column:origin" json:"origin,omitempty"`
	Position int    `gorm:"column:position;not null;default:0" json:"position"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Clause) TableName() string { return "clause" }

// Body returns the text to display for a clause: the dual-source fields when
// present, otherwise the unified fallback.
func (c *Clause) Body() string {
	if c.GeneralCondition != "" || c.ParticularCondition != "" {
		if c.GeneralCondition != "" {
			return c.GeneralCondition
		}
		return c.ParticularCondition
	}
	return c.ClauseText
}

// BeforeCreate hook to generate UUID
func (c *Clause) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
