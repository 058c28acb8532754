package service

import (
	"context"
	"fmt"
	"time"

	"fish-ledger/internal/ledger"
	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"
	"fish-ledger/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PaymentInput struct {
	PartyType   model.PartyType
	PartyID     uuid.UUID
	PaymentDate time.Time
	Amount      decimal.Decimal
	Method      string
	Reference   string
	Notes       string
	CreatedBy   string
}

type PaymentService interface {
	Create(ctx context.Context, in PaymentInput) (*model.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, partyType model.PartyType, partyID uuid.UUID) ([]model.Payment, error)
}

type paymentService struct {
	db          *gorm.DB
	paymentRepo repository.PaymentRepository
	ledger      *Ledger
	notifier    Notifier
	log         logrus.FieldLogger
}

func NewPaymentService(db *gorm.DB, paymentRepo repository.PaymentRepository, l *Ledger, n Notifier, log logrus.FieldLogger) PaymentService {
	return &paymentService{db: db, paymentRepo: paymentRepo, ledger: l, notifier: n, log: log}
}

func (s *paymentService) Create(ctx context.Context, in PaymentInput) (*model.Payment, error) {
	if in.PartyType != model.PartyCustomer && in.PartyType != model.PartySupplier {
		return nil, invalid("party_type", "must be %q or %q", model.PartyCustomer, model.PartySupplier)
	}
	in.Amount = ledger.OnScale(in.Amount)
	if !in.Amount.IsPositive() {
		return nil, invalid("amount", "must be greater than zero")
	}

	payment := &model.Payment{
		PartyType:   in.PartyType,
		PartyID:     in.PartyID,
		PaymentDate: DateOnly(in.PaymentDate),
		Amount:      in.Amount,
		Method:      in.Method,
		Reference:   in.Reference,
		Notes:       in.Notes,
		Status:      model.StatusPosted,
	}
	payment.CreatedBy = in.CreatedBy
	payment.UpdatedBy = in.CreatedBy

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(tx, payment); err != nil {
			return err
		}
		return s.ledger.Apply(tx, ledger.PaymentEffects(*payment))
	})
	if err != nil {
		logger.LogError(s.log, "payment", "Create", "record payment", in.PartyID, err)
		return nil, err
	}

	publish(s.notifier, "payment", "create", payment.ID.String())
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.FindByID(tx, id)
		if err != nil {
			return notFound(err, "payment", id)
		}
		if payment.Status == model.StatusDeleted {
			return fmt.Errorf("payment %s: %w", id, ErrDocumentDeleted)
		}
		if err := s.ledger.Apply(tx, ledger.PaymentEffects(*payment).Reverse()); err != nil {
			return err
		}
		return s.paymentRepo.SetStatus(tx, id, model.StatusDeleted)
	})
	if err != nil {
		logger.LogError(s.log, "payment", "Delete", "delete payment", id, err)
		return err
	}

	publish(s.notifier, "payment", "delete", id.String())
	return nil
}

func (s *paymentService) List(ctx context.Context, partyType model.PartyType, partyID uuid.UUID) ([]model.Payment, error) {
	return s.paymentRepo.FindByParty(ctx, partyType, partyID)
}
