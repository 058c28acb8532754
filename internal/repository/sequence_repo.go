package repository

import (
	"fish-ledger/internal/model"

	"gorm.io/gorm"
)

type SequenceRepository interface {
	FindByName(tx *gorm.DB, name string) (*model.NumberSequence, error)
	Increment(tx *gorm.DB, name string) error
}

type sequenceRepo struct{}

func NewSequenceRepo() SequenceRepository {
	return &sequenceRepo{}
}

func (r *sequenceRepo) FindByName(tx *gorm.DB, name string) (*model.NumberSequence, error) {
	var seq model.NumberSequence
	if err := tx.Where("name = ?", name).First(&seq).Error; err != nil {
		return nil, err
	}
	return &seq, nil
}

// Increment is a no-op for a series without a row; numbering then keeps using the fallback.
func (r *sequenceRepo) Increment(tx *gorm.DB, name string) error {
	return tx.Model(&model.NumberSequence{}).
		Where("name = ?", name).
		Update("current_number", gorm.Expr("current_number + 1")).Error
}
