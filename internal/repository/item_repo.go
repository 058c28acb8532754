package repository

import (
	"context"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Item, error)
	NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error)
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update writes descriptive fields only; stock columns belong to the ledger.
func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	return affected(r.db.WithContext(ctx).Model(item).
		Select("name", "name_secondary", "category_id", "unit_price", "is_active", "updated_by").
		Updates(item))
}

func (r *itemRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Update("is_active", false))
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindAll(ctx context.Context, activeOnly bool) ([]model.Item, error) {
	var items []model.Item
	q := r.db.WithContext(ctx).Preload("Category").Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *itemRepo) NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	return taken(r.db.WithContext(ctx), &model.Item{}, "name", name, exceptID)
}

// AdjustStock takes the document transaction so the stock move commits with it.
func (r *itemRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return adjustColumn(tx, &model.Item{}, id, "current_stock", delta)
}
