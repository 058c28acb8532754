package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name          string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	NameSecondary string `gorm:"type:varchar(120)" json:"name_secondary"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// Item is a tradable stock-keeping unit. CurrentStock is maintained incrementally by the ledger
// and is never written directly by master-data updates.
type Item struct {
	BaseModel
	Name          string          `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	NameSecondary string          `gorm:"type:varchar(120)" json:"name_secondary"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"unit_price"`
	OpeningStock  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"opening_stock"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"current_stock"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
}

// Customer balances grow with sales attributed to them and shrink with receipts.
type Customer struct {
	BaseModel
	Name           string          `gorm:"type:varchar(160);uniqueIndex;not null" json:"name"`
	NameSecondary  string          `gorm:"type:varchar(160)" json:"name_secondary"`
	Phone          string          `gorm:"type:varchar(30)" json:"phone"`
	Address        string          `gorm:"type:text" json:"address"`
	NIC            *string         `gorm:"type:varchar(20);uniqueIndex" json:"nic"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"opening_balance"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"current_balance"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"credit_limit"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
}

// Supplier balances track what the trader owes the supplier.
type Supplier struct {
	BaseModel
	Name                 string          `gorm:"type:varchar(160);uniqueIndex;not null" json:"name"`
	NameSecondary        string          `gorm:"type:varchar(160)" json:"name_secondary"`
	Phone                string          `gorm:"type:varchar(30)" json:"phone"`
	Address              string          `gorm:"type:text" json:"address"`
	NIC                  *string         `gorm:"type:varchar(20);uniqueIndex" json:"nic"`
	OpeningBalance       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"opening_balance"`
	CurrentBalance       decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"current_balance"`
	AdvanceAmount        decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"advance_amount"`
	DefaultCommissionPct decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0" json:"default_commission_pct"`
	IsActive             bool            `gorm:"default:true" json:"is_active"`
}

// Setting is a free-form key/value row (company name, print header, ...).
type Setting struct {
	Key   string `gorm:"type:varchar(80);primaryKey" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}
