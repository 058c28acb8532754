package repository

import (
	"context"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindAll(ctx context.Context) ([]model.Category, error)
	NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return affected(r.db.WithContext(ctx).Model(category).
		Select("name", "name_secondary", "is_active", "updated_by").
		Updates(category))
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) NameTaken(ctx context.Context, name string, exceptID uuid.UUID) (bool, error) {
	return taken(r.db.WithContext(ctx), &model.Category{}, "name", name, exceptID)
}
