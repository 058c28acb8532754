package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierBill settles a supplier's sold, not yet billed sale lines over [DateFrom, DateTo].
type SupplierBill struct {
	BaseModel
	BillNumber       string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"bill_number"`
	SupplierID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"supplier_id"`
	Supplier         *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	BillDate         time.Time       `gorm:"index;not null" json:"bill_date"`
	DateFrom         time.Time       `gorm:"not null" json:"date_from"`
	DateTo           time.Time       `gorm:"not null" json:"date_to"`
	TotalWeight      decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"total_weight"`
	GrossAmount      decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"gross_amount"`
	CommissionPct    decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"commission_pct"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"commission_amount"`
	CoolieCharges    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"coolie_charges"`
	TransportCharges decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"transport_charges"`
	IceCharges       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"ice_charges"`
	OtherCharges     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"other_charges"`
	TotalCharges     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"total_charges"`
	NetAmount        decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"net_amount"`
	AdvanceDeducted  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"advance_deducted"`
	CashPaid         decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"cash_paid"`
	BalanceAmount    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"balance_amount"`
	Notes            string          `gorm:"type:text" json:"notes"`
	Status           DocumentStatus  `gorm:"type:varchar(10);index;not null" json:"status"`
}
