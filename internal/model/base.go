package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scale is the number of decimal places kept by every decimal(18,3) weight, rate and amount column.
const Scale = 3

// BaseModel carries the UUID primary key and audit columns shared by every ledger table.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CreatedBy string `gorm:"type:varchar(64)" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"type:varchar(64)" json:"updated_by,omitempty"`
}

// BeforeCreate assigns a fresh UUID unless the caller already picked one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// DocumentStatus is the lifecycle state of sales, purchases, bills and payments.
type DocumentStatus string

const (
	StatusDraft   DocumentStatus = "draft"
	StatusPosted  DocumentStatus = "posted"
	StatusDeleted DocumentStatus = "deleted"
)
