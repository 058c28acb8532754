package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartySupplier PartyType = "supplier"
)

// Payment is money received from a customer or paid to a supplier outside a sale or purchase.
type Payment struct {
	BaseModel
	PartyType   PartyType       `gorm:"type:varchar(10);index:idx_payment_party;not null" json:"party_type"`
	PartyID     uuid.UUID       `gorm:"type:uuid;index:idx_payment_party;not null" json:"party_id"`
	PaymentDate time.Time       `gorm:"index;not null" json:"payment_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"amount"`
	Method      string          `gorm:"type:varchar(20)" json:"method"`
	Reference   string          `gorm:"type:varchar(60)" json:"reference"`
	Notes       string          `gorm:"type:text" json:"notes"`
	Status      DocumentStatus  `gorm:"type:varchar(10);index;not null" json:"status"`
}
