package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SectionKind tags which source document a section belongs to. The unified
// Conditions view is derived, never stored, so it has no kind.
const (
	SectionKindGeneral    = "general"
	SectionKindParticular = "particular"
	SectionKindOther      = "other"
)

type ContractSection struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Kind       string    `gorm:"column:kind;not null;default:'other';index" json:"kind"`
	Position   int       `gorm:"column:position;not null;default:0" json:"position"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContractSection) TableName() string { return "contract_section" }

// ItemType discriminates the variants a section may hold. Clause items live in
// the clause table; the other variants keep their payload as JSONB.
const (
	ItemTypeClause    = "clause"
	ItemTypeParagraph = "paragraph"
	ItemTypeField     = "field"
	ItemTypeImage     = "image"
)

type SectionItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"section_id"`
	ItemType  string         `gorm:"column:item_type;not null;index" json:"item_type"`
	Position  int            `gorm:"column:position;not null;default:0" json:"position"`
	ClauseID  *uuid.UUID     `gorm:"type:uuid;index" json:"clause_id,omitempty"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SectionItem) TableName() string { return "section_item" }

// BeforeCreate hook to generate UUID
func (s *ContractSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to generate UUID
func (i *SectionItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
