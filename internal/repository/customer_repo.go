package repository

import (
	"context"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Customer, error)
	NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error)
	NICTaken(ctx context.Context, nic string, exceptID uuid.UUID) (bool, error)
	AdjustBalance(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepo) Update(ctx context.Context, customer *model.Customer) error {
	return affected(r.db.WithContext(ctx).Model(customer).
		Select("name", "name_secondary", "phone", "address", "nic", "credit_limit", "is_active", "updated_by").
		Updates(customer))
}

func (r *customerRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Update("is_active", false))
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindAll(ctx context.Context, activeOnly bool) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (r *customerRepo) NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	return taken(r.db.WithContext(ctx), &model.Customer{}, "name", name, exceptID)
}

func (r *customerRepo) NICTaken(ctx context.Context, nic string, exceptID uuid.UUID) (bool, error) {
	return taken(r.db.WithContext(ctx), &model.Customer{}, "nic", nic, exceptID)
}

func (r *customerRepo) AdjustBalance(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return adjustColumn(tx, &model.Customer{}, id, "current_balance", delta)
}
