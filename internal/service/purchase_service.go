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

type PurchaseLineInput struct {
	ItemID uuid.UUID
	Weight decimal.Decimal
	Rate   decimal.Decimal
	// Amount overrides weight × rate when non-zero.
	Amount decimal.Decimal
	Notes  string
}

type PurchaseInput struct {
	SupplierID    uuid.UUID
	VehicleNumber string
	PurchaseDate  time.Time
	Notes         string
	Concession    decimal.Decimal
	CashPaid      decimal.Decimal
	Items         []PurchaseLineInput
	CreatedBy     string
}

type PurchaseService interface {
	Create(ctx context.Context, in PurchaseInput) (*CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, in PurchaseInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter repository.PurchaseFilter) ([]model.Purchase, error)
}

type purchaseService struct {
	db           *gorm.DB
	purchaseRepo repository.PurchaseRepository
	numbers      NumberingService
	ledger       *Ledger
	notifier     Notifier
	log          logrus.FieldLogger
}

func NewPurchaseService(db *gorm.DB, purchaseRepo repository.PurchaseRepository, numbers NumberingService, l *Ledger, n Notifier, log logrus.FieldLogger) PurchaseService {
	return &purchaseService{
		db:           db,
		purchaseRepo: purchaseRepo,
		numbers:      numbers,
		ledger:       l,
		notifier:     n,
		log:          log,
	}
}

func buildPurchaseLines(in []PurchaseLineInput) []model.PurchaseItem {
	lines := make([]model.PurchaseItem, len(in))
	for i, l := range in {
		lines[i] = model.PurchaseItem{
			LineNumber: i + 1,
			ItemID:     l.ItemID,
			Weight:     l.Weight,
			Rate:       l.Rate,
			Amount:     l.Amount,
			Notes:      l.Notes,
		}
		ledger.PricePurchaseLine(&lines[i])
	}
	return lines
}

// priced builds the header against the supplier's balance as it stands inside tx.
func (s *purchaseService) priced(tx *gorm.DB, in PurchaseInput, lines []model.PurchaseItem) (*model.Purchase, error) {
	supplier, err := s.ledger.Suppliers.FindForLedger(tx, in.SupplierID)
	if err != nil {
		return nil, notFound(err, "supplier", in.SupplierID)
	}

	in.Concession = ledger.OnScale(in.Concession)
	in.CashPaid = ledger.OnScale(in.CashPaid)
	t := ledger.ComputePurchaseTotals(lines, in.Concession, in.CashPaid, supplier.CurrentBalance)
	return &model.Purchase{
		SupplierID:      in.SupplierID,
		VehicleNumber:   in.VehicleNumber,
		PurchaseDate:    DateOnly(in.PurchaseDate),
		Notes:           in.Notes,
		TotalWeight:     t.TotalWeight,
		GrossAmount:     t.GrossAmount,
		Concession:      in.Concession,
		NetAmount:       t.NetAmount,
		CashPaid:        in.CashPaid,
		PreviousBalance: supplier.CurrentBalance,
		BalanceAmount:   t.BalanceAmount,
		Items:           lines,
	}, nil
}

func purchaseEffects(p *model.Purchase) ledger.Effects {
	return ledger.PurchaseEffects(p.SupplierID, p.NetAmount, p.CashPaid, p.Items)
}

func (s *purchaseService) Create(ctx context.Context, in PurchaseInput) (*CreateResult, error) {
	var purchase *model.Purchase

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.numbers.Peek(tx, model.SeriesPurchase)
		if err != nil {
			return err
		}

		purchase, err = s.priced(tx, in, buildPurchaseLines(in.Items))
		if err != nil {
			return err
		}
		purchase.PurchaseNumber = number
		purchase.Status = model.StatusPosted
		purchase.CreatedBy = in.CreatedBy
		purchase.UpdatedBy = in.CreatedBy

		if err := s.purchaseRepo.Create(tx, purchase); err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, purchaseEffects(purchase)); err != nil {
			return err
		}
		return s.numbers.Increment(tx, model.SeriesPurchase)
	})
	if err != nil {
		logger.LogError(s.log, "purchase", "Create", "create purchase", in.SupplierID, err)
		return nil, err
	}

	publish(s.notifier, "purchase", "create", purchase.ID.String())
	return &CreateResult{ID: purchase.ID, Number: purchase.PurchaseNumber}, nil
}

func (s *purchaseService) loadLive(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	existing, err := s.purchaseRepo.FindByID(tx, id)
	if err != nil {
		return nil, notFound(err, "purchase", id)
	}
	if existing.Status == model.StatusDeleted {
		return nil, fmt.Errorf("purchase %s: %w", existing.PurchaseNumber, ErrDocumentDeleted)
	}
	return existing, nil
}

// Update fully reverses the stored purchase before pricing the new one, so the previous balance
// it records is the supplier's balance without this purchase.
func (s *purchaseService) Update(ctx context.Context, id uuid.UUID, in PurchaseInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.loadLive(tx, id)
		if err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, purchaseEffects(existing).Reverse()); err != nil {
			return err
		}

		purchase, err := s.priced(tx, in, buildPurchaseLines(in.Items))
		if err != nil {
			return err
		}
		purchase.ID = existing.ID
		purchase.PurchaseNumber = existing.PurchaseNumber
		purchase.Status = existing.Status
		purchase.UpdatedBy = in.CreatedBy

		if err := s.purchaseRepo.UpdateHeader(tx, purchase); err != nil {
			return err
		}
		if err := s.purchaseRepo.ReplaceLines(tx, existing.ID, purchase.Items); err != nil {
			return err
		}
		return s.ledger.Apply(tx, purchaseEffects(purchase))
	})
	if err != nil {
		logger.LogError(s.log, "purchase", "Update", "update purchase", id, err)
		return err
	}

	publish(s.notifier, "purchase", "update", id.String())
	return nil
}

func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.loadLive(tx, id)
		if err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, purchaseEffects(existing).Reverse()); err != nil {
			return err
		}
		return s.purchaseRepo.SetStatus(tx, id, model.StatusDeleted)
	})
	if err != nil {
		logger.LogError(s.log, "purchase", "Delete", "delete purchase", id, err)
		return err
	}

	publish(s.notifier, "purchase", "delete", id.String())
	return nil
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "purchase", id)
	}
	return purchase, nil
}

func (s *purchaseService) List(ctx context.Context, filter repository.PurchaseFilter) ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll(ctx, filter)
}
