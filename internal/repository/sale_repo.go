package repository

import (
	"context"
	"time"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFilter narrows sale listings. Zero values mean "any".
type SaleFilter struct {
	From           *time.Time
	To             *time.Time
	CustomerID     *uuid.UUID
	SupplierID     *uuid.UUID
	IncludeDeleted bool
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	UpdateHeader(tx *gorm.DB, sale *model.Sale) error
	ReplaceLines(tx *gorm.DB, saleID uuid.UUID, lines []model.SaleItem) error
	SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error
	FindAll(ctx context.Context, filter SaleFilter) ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create inserts the header and then its lines in slice order.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	if err := tx.Omit("Items", "Customer", "Supplier").Create(sale).Error; err != nil {
		return err
	}
	return r.insertLines(tx, sale.ID, sale.Items)
}

func (r *saleRepo) insertLines(tx *gorm.DB, saleID uuid.UUID, lines []model.SaleItem) error {
	for i := range lines {
		lines[i].SaleID = saleID
		if err := tx.Omit("Item").Create(&lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *saleRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_number ASC") }).
		Preload("Items.Item").
		Preload("Customer").
		Preload("Supplier").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateHeader rewrites everything but the number and the audit columns set at creation.
func (r *saleRepo) UpdateHeader(tx *gorm.DB, sale *model.Sale) error {
	return affected(tx.Model(&model.Sale{BaseModel: model.BaseModel{ID: sale.ID}}).
		Select("customer_id", "supplier_id", "vehicle_number", "sale_date", "details",
			"total_weight", "gross_amount", "fare_charges", "ice_charges", "net_amount",
			"cash_received", "receipt_amount", "balance_amount", "status", "updated_by").
		Updates(sale))
}

func (r *saleRepo) ReplaceLines(tx *gorm.DB, saleID uuid.UUID, lines []model.SaleItem) error {
	if err := tx.Where("sale_id = ?", saleID).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	return r.insertLines(tx, saleID, lines)
}

func (r *saleRepo) SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error {
	return affected(tx.Model(&model.Sale{}).Where("id = ?", id).Update("status", status))
}

func (r *saleRepo) FindAll(ctx context.Context, filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).Preload("Customer").Preload("Supplier").
		Order("sale_date DESC, sale_number DESC")
	if filter.From != nil {
		q = q.Where("sale_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("sale_date <= ?", *filter.To)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.SupplierID != nil {
		q = q.Where("supplier_id = ?", *filter.SupplierID)
	}
	if !filter.IncludeDeleted {
		q = q.Where("status <> ?", model.StatusDeleted)
	}
	err := q.Find(&sales).Error
	return sales, err
}
