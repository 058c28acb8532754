package repository

import (
	"context"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	Update(ctx context.Context, supplier *model.Supplier) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Supplier, error)
	NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error)
	NICTaken(ctx context.Context, nic string, exceptID uuid.UUID) (bool, error)
	// FindForLedger reads the supplier through the caller's handle, usually a document transaction.
	FindForLedger(tx *gorm.DB, id uuid.UUID) (*model.Supplier, error)
	AdjustBalance(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepo) Update(ctx context.Context, supplier *model.Supplier) error {
	return affected(r.db.WithContext(ctx).Model(supplier).
		Select("name", "name_secondary", "phone", "address", "nic", "advance_amount",
			"default_commission_pct", "is_active", "updated_by").
		Updates(supplier))
}

func (r *supplierRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", id).Update("is_active", false))
}

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	return r.FindForLedger(r.db.WithContext(ctx), id)
}

func (r *supplierRepo) FindAll(ctx context.Context, activeOnly bool) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	return taken(r.db.WithContext(ctx), &model.Supplier{}, "name", name, exceptID)
}

func (r *supplierRepo) NICTaken(ctx context.Context, nic string, exceptID uuid.UUID) (bool, error) {
	return taken(r.db.WithContext(ctx), &model.Supplier{}, "nic", nic, exceptID)
}

func (r *supplierRepo) FindForLedger(tx *gorm.DB, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := tx.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepo) AdjustBalance(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return adjustColumn(tx, &model.Supplier{}, id, "current_balance", delta)
}
