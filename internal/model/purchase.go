package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Purchase struct {
	BaseModel
	PurchaseNumber  string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"purchase_number"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"supplier_id"`
	Supplier        *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	VehicleNumber   string          `gorm:"type:varchar(30)" json:"vehicle_number"`
	PurchaseDate    time.Time       `gorm:"index;not null" json:"purchase_date"`
	Notes           string          `gorm:"type:text" json:"notes"`
	TotalWeight     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"total_weight"`
	GrossAmount     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"gross_amount"`
	Concession      decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"concession"`
	NetAmount       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"net_amount"`
	CashPaid        decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"cash_paid"`
	PreviousBalance decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"previous_balance"`
	BalanceAmount   decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"balance_amount"`
	Status          DocumentStatus  `gorm:"type:varchar(10);index;not null" json:"status"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;index;not null" json:"purchase_id"`
	LineNumber int             `gorm:"not null" json:"line_number"`
	ItemID     uuid.UUID       `gorm:"type:uuid;index;not null" json:"item_id"`
	Item       *Item           `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	Weight     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"weight"`
	Rate       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"rate"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"amount"`
	Notes      string          `gorm:"type:text" json:"notes"`
}

func (l *PurchaseItem) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
