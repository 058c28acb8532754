package repository

import (
	"context"
	"time"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseFilter struct {
	From           *time.Time
	To             *time.Time
	SupplierID     *uuid.UUID
	IncludeDeleted bool
}

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error)
	UpdateHeader(tx *gorm.DB, purchase *model.Purchase) error
	ReplaceLines(tx *gorm.DB, purchaseID uuid.UUID, lines []model.PurchaseItem) error
	SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error
	FindAll(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	if err := tx.Omit("Items", "Supplier").Create(purchase).Error; err != nil {
		return err
	}
	return r.insertLines(tx, purchase.ID, purchase.Items)
}

func (r *purchaseRepo) insertLines(tx *gorm.DB, purchaseID uuid.UUID, lines []model.PurchaseItem) error {
	for i := range lines {
		lines[i].PurchaseID = purchaseID
		if err := tx.Omit("Item").Create(&lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *purchaseRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_number ASC") }).
		Preload("Items.Item").
		Preload("Supplier").
		First(&purchase, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) UpdateHeader(tx *gorm.DB, purchase *model.Purchase) error {
	return affected(tx.Model(&model.Purchase{BaseModel: model.BaseModel{ID: purchase.ID}}).
		Select("supplier_id", "vehicle_number", "purchase_date", "notes", "total_weight",
			"gross_amount", "concession", "net_amount", "cash_paid", "previous_balance",
			"balance_amount", "status", "updated_by").
		Updates(purchase))
}

func (r *purchaseRepo) ReplaceLines(tx *gorm.DB, purchaseID uuid.UUID, lines []model.PurchaseItem) error {
	if err := tx.Where("purchase_id = ?", purchaseID).Delete(&model.PurchaseItem{}).Error; err != nil {
		return err
	}
	return r.insertLines(tx, purchaseID, lines)
}

func (r *purchaseRepo) SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error {
	return affected(tx.Model(&model.Purchase{}).Where("id = ?", id).Update("status", status))
}

func (r *purchaseRepo) FindAll(ctx context.Context, filter PurchaseFilter) ([]model.Purchase, error) {
	var purchases []model.Purchase
	q := r.db.WithContext(ctx).Preload("Supplier").Order("purchase_date DESC, purchase_number DESC")
	if filter.From != nil {
		q = q.Where("purchase_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("purchase_date <= ?", *filter.To)
	}
	if filter.SupplierID != nil {
		q = q.Where("supplier_id = ?", *filter.SupplierID)
	}
	if !filter.IncludeDeleted {
		q = q.Where("status <> ?", model.StatusDeleted)
	}
	err := q.Find(&purchases).Error
	return purchases, err
}
