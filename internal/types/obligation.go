package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ObligationTemporal  = "temporal"
	ObligationFinancial = "financial"
	ObligationSummary   = "summary"
)

// Obligation is one AI-extracted item attached to a clause. Source records
// whether the item was found in the General or Particular text.
type Obligation struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClauseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"clause_id"`
	Kind     string         `gorm:"column:kind;not null;index" json:"kind"`
	Text     string         `gorm:"column:text;type:text;not null" json:"text"`
	Source   string         `gorm:"column:source" json:"source,omitempty"`
	Payload  datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Obligation) TableName() string { return "obligation" }

// BeforeCreate hook to generate UUID
func (o *Obligation) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
