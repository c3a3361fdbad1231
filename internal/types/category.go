package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`

	// Position is the user-adjustable display order. Nil means never set;
	// display falls back to alphabetical.
	Position *int `gorm:"column:position" json:"position,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Category) TableName() string { return "category" }

// CategoryMember is the authoritative clause-to-category mapping. The
// Clause.Category field and per-category clause lists are projections of it.
type CategoryMember struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index;index:idx_category_member,unique,priority:1" json:"category_id"`
	ClauseNumber string    `gorm:"column:clause_number;not null;index:idx_category_member,unique,priority:2" json:"clause_number"`
	Rank         int       `gorm:"column:rank;not null;default:0" json:"rank"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (CategoryMember) TableName() string { return "category_member" }

// BeforeCreate hook to generate UUID
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to generate UUID
func (m *CategoryMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
