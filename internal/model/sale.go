package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Sale struct {
	BaseModel
	SaleNumber    string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"sale_number"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier      *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	VehicleNumber string          `gorm:"type:varchar(30)" json:"vehicle_number"`
	SaleDate      time.Time       `gorm:"index;not null" json:"sale_date"`
	Details       string          `gorm:"type:text" json:"details"`
	TotalWeight   decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"total_weight"`
	GrossAmount   decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"gross_amount"`
	FareCharges   decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"fare_charges"`
	IceCharges    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"ice_charges"`
	NetAmount     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"net_amount"`
	CashReceived  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"cash_received"`
	ReceiptAmount decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"receipt_amount"`
	BalanceAmount decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"balance_amount"`
	Status        DocumentStatus  `gorm:"type:varchar(10);index;not null" json:"status"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// SaleItem is one sale line. CustomerID, when set, attributes the line's balance effect to that
// customer instead of leaving it unattributed; the header customer is never used for balances.
type SaleItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"sale_id"`
	LineNumber     int             `gorm:"not null" json:"line_number"`
	ItemID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"item_id"`
	Item           *Item           `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	CustomerID     *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Weight         decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"weight"`
	Rate           decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"rate"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"amount"`
	FareCharges    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"fare_charges"`
	IceCharges     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"ice_charges"`
	CashAmount     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"cash_amount"`
	ReceiptAmount  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"receipt_amount"`
	IsStock        bool            `gorm:"default:false" json:"is_stock"`
	Notes          string          `gorm:"type:text" json:"notes"`
	SupplierBillID *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_bill_id"`
}

func (l *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
