package repository

import (
	"context"
	"time"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillPreviewLine is one posted, not yet billed sale line offered for a supplier bill.
type BillPreviewLine struct {
	SaleItemID uuid.UUID       `json:"sale_item_id"`
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	SaleDate   time.Time       `json:"sale_date"`
	LineNumber int             `json:"line_number"`
	ItemID     uuid.UUID       `json:"item_id"`
	ItemName   string          `json:"item_name"`
	Weight     decimal.Decimal `json:"weight"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
}

type SupplierBillRepository interface {
	Create(tx *gorm.DB, bill *model.SupplierBill) error
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.SupplierBill, error)
	Update(tx *gorm.DB, bill *model.SupplierBill) error
	SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error
	FindAll(ctx context.Context, supplierID *uuid.UUID, includeDeleted bool) ([]model.SupplierBill, error)
	PreviewLines(tx *gorm.DB, supplierID uuid.UUID, from, to time.Time) ([]BillPreviewLine, error)
	MarkLinesBilled(tx *gorm.DB, supplierID uuid.UUID, from, to time.Time, billID uuid.UUID) (int64, error)
}

type supplierBillRepo struct {
	db *gorm.DB
}

func NewSupplierBillRepo(db *gorm.DB) SupplierBillRepository {
	return &supplierBillRepo{db}
}

func (r *supplierBillRepo) Create(tx *gorm.DB, bill *model.SupplierBill) error {
	return tx.Omit("Supplier").Create(bill).Error
}

func (r *supplierBillRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.SupplierBill, error) {
	var bill model.SupplierBill
	if err := tx.Preload("Supplier").First(&bill, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// Update is a plain field write; it never touches balances or billed lines.
func (r *supplierBillRepo) Update(tx *gorm.DB, bill *model.SupplierBill) error {
	return affected(tx.Model(&model.SupplierBill{BaseModel: model.BaseModel{ID: bill.ID}}).
		Select("bill_date", "date_from", "date_to", "total_weight", "gross_amount", "commission_pct",
			"commission_amount", "coolie_charges", "transport_charges", "ice_charges", "other_charges",
			"total_charges", "net_amount", "advance_deducted", "cash_paid", "balance_amount", "notes",
			"updated_by").
		Updates(bill))
}

func (r *supplierBillRepo) SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error {
	return affected(tx.Model(&model.SupplierBill{}).Where("id = ?", id).Update("status", status))
}

func (r *supplierBillRepo) FindAll(ctx context.Context, supplierID *uuid.UUID, includeDeleted bool) ([]model.SupplierBill, error) {
	var bills []model.SupplierBill
	q := r.db.WithContext(ctx).Preload("Supplier").Order("bill_date DESC, bill_number DESC")
	if supplierID != nil {
		q = q.Where("supplier_id = ?", *supplierID)
	}
	if !includeDeleted {
		q = q.Where("status <> ?", model.StatusDeleted)
	}
	err := q.Find(&bills).Error
	return bills, err
}

// unbilledSales selects the posted sales of a supplier inside [from, to].
func unbilledSales(tx *gorm.DB, supplierID uuid.UUID, from, to time.Time) *gorm.DB {
	return tx.Model(&model.Sale{}).Select("id").
		Where("status = ? AND supplier_id = ? AND sale_date BETWEEN ? AND ?", model.StatusPosted, supplierID, from, to)
}

// PreviewLines only returns lines whose supplier_bill_id is still empty; that filter is what keeps
// a sale line from landing on two bills.
func (r *supplierBillRepo) PreviewLines(tx *gorm.DB, supplierID uuid.UUID, from, to time.Time) ([]BillPreviewLine, error) {
	lines := []BillPreviewLine{}
	err := tx.Table("sale_items AS si").
		Select(`si.id AS sale_item_id, s.id AS sale_id, s.sale_number, s.sale_date, si.line_number,
			si.item_id, i.name AS item_name, si.weight, si.rate, si.amount`).
		Joins("JOIN sales s ON s.id = si.sale_id").
		Joins("LEFT JOIN items i ON i.id = si.item_id").
		Where("s.status = ? AND s.supplier_id = ? AND s.sale_date BETWEEN ? AND ?", model.StatusPosted, supplierID, from, to).
		Where("si.supplier_bill_id IS NULL").
		Order("s.sale_date ASC, s.sale_number ASC, si.line_number ASC").
		Scan(&lines).Error
	return lines, err
}

func (r *supplierBillRepo) MarkLinesBilled(tx *gorm.DB, supplierID uuid.UUID, from, to time.Time, billID uuid.UUID) (int64, error) {
	res := tx.Model(&model.SaleItem{}).
		Where("supplier_bill_id IS NULL").
		Where("sale_id IN (?)", unbilledSales(tx, supplierID, from, to)).
		Update("supplier_bill_id", billID)
	return res.RowsAffected, res.Error
}
