package repository

import (
	"context"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(tx *gorm.DB, payment *model.Payment) error
	FindByID(tx *gorm.DB, id uuid.UUID) (*model.Payment, error)
	SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error
	FindByParty(ctx context.Context, partyType model.PartyType, partyID uuid.UUID) ([]model.Payment, error)
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) Create(tx *gorm.DB, payment *model.Payment) error {
	return tx.Create(payment).Error
}

func (r *paymentRepo) FindByID(tx *gorm.DB, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := tx.First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepo) SetStatus(tx *gorm.DB, id uuid.UUID, status model.DocumentStatus) error {
	return affected(tx.Model(&model.Payment{}).Where("id = ?", id).Update("status", status))
}

func (r *paymentRepo) FindByParty(ctx context.Context, partyType model.PartyType, partyID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("party_type = ? AND party_id = ?", partyType, partyID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	return payments, err
}
