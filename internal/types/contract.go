package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ContractStatusPending    = "pending"
	ContractStatusProcessing = "processing"
	ContractStatusCompleted  = "completed"
	ContractStatusFailed     = "failed"
)

type Contract struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	Status     string         `gorm:"column:status;not null;default:'pending';index" json:"status"`
	SourceFile string         `gorm:"column:source_file" json:"source_file,omitempty"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	ErrorMsg   string         `gorm:"column:error_msg" json:"error_msg,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contract) TableName() string { return "contract" }

// BeforeCreate hook to generate UUID
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
