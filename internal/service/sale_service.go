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

type SaleLineInput struct {
	ItemID        uuid.UUID
	CustomerID    *uuid.UUID
	Weight        decimal.Decimal
	Rate          decimal.Decimal
	FareCharges   decimal.Decimal
	IceCharges    decimal.Decimal
	CashAmount    decimal.Decimal
	ReceiptAmount decimal.Decimal
	IsStock       bool
	Notes         string
}

type SaleInput struct {
	CustomerID    uuid.UUID
	SupplierID    *uuid.UUID
	VehicleNumber string
	SaleDate      time.Time
	Details       string
	Items         []SaleLineInput
	CreatedBy     string
}

// CreateResult is the id and generated number of a new document.
type CreateResult struct {
	ID     uuid.UUID
	Number string
}

type SaleService interface {
	Create(ctx context.Context, in SaleInput) (*CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, in SaleInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error)
}

type saleService struct {
	db       *gorm.DB
	saleRepo repository.SaleRepository
	numbers  NumberingService
	ledger   *Ledger
	notifier Notifier
	log      logrus.FieldLogger
}

func NewSaleService(db *gorm.DB, saleRepo repository.SaleRepository, numbers NumberingService, l *Ledger, n Notifier, log logrus.FieldLogger) SaleService {
	return &saleService{
		db:       db,
		saleRepo: saleRepo,
		numbers:  numbers,
		ledger:   l,
		notifier: n,
		log:      log,
	}
}

func buildSaleLines(in []SaleLineInput) []model.SaleItem {
	lines := make([]model.SaleItem, len(in))
	for i, l := range in {
		lines[i] = model.SaleItem{
			LineNumber:    i + 1,
			ItemID:        l.ItemID,
			CustomerID:    l.CustomerID,
			Weight:        l.Weight,
			Rate:          l.Rate,
			FareCharges:   l.FareCharges,
			IceCharges:    l.IceCharges,
			CashAmount:    l.CashAmount,
			ReceiptAmount: l.ReceiptAmount,
			IsStock:       l.IsStock,
			Notes:         l.Notes,
		}
		ledger.PriceSaleLine(&lines[i])
	}
	return lines
}

func saleHeader(in SaleInput, lines []model.SaleItem) *model.Sale {
	t := ledger.ComputeSaleTotals(lines)
	return &model.Sale{
		CustomerID:    in.CustomerID,
		SupplierID:    in.SupplierID,
		VehicleNumber: in.VehicleNumber,
		SaleDate:      DateOnly(in.SaleDate),
		Details:       in.Details,
		TotalWeight:   t.TotalWeight,
		GrossAmount:   t.GrossAmount,
		FareCharges:   t.FareCharges,
		IceCharges:    t.IceCharges,
		NetAmount:     t.NetAmount,
		CashReceived:  t.CashReceived,
		ReceiptAmount: t.ReceiptAmount,
		BalanceAmount: t.BalanceAmount,
		Items:         lines,
	}
}

func (s *saleService) Create(ctx context.Context, in SaleInput) (*CreateResult, error) {
	sale := saleHeader(in, buildSaleLines(in.Items))
	sale.Status = model.StatusPosted
	sale.CreatedBy = in.CreatedBy
	sale.UpdatedBy = in.CreatedBy

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := s.numbers.Peek(tx, model.SeriesSale)
		if err != nil {
			return err
		}
		sale.SaleNumber = number

		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, ledger.SaleEffects(sale.Items)); err != nil {
			return err
		}
		return s.numbers.Increment(tx, model.SeriesSale)
	})
	if err != nil {
		logger.LogError(s.log, "sale", "Create", "create sale", in.CustomerID, err)
		return nil, err
	}

	publish(s.notifier, "sale", "create", sale.ID.String())
	return &CreateResult{ID: sale.ID, Number: sale.SaleNumber}, nil
}

// loadLive fetches a sale for mutation, refusing ones already reversed by Delete.
func (s *saleService) loadLive(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	existing, err := s.saleRepo.FindByID(tx, id)
	if err != nil {
		return nil, notFound(err, "sale", id)
	}
	if existing.Status == model.StatusDeleted {
		return nil, fmt.Errorf("sale %s: %w", existing.SaleNumber, ErrDocumentDeleted)
	}
	return existing, nil
}

// Update reverses the stored lines' effects, swaps in the new lines and applies theirs.
// Lines keep the supplier bill mark of the old line at the same position.
func (s *saleService) Update(ctx context.Context, id uuid.UUID, in SaleInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.loadLive(tx, id)
		if err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, ledger.SaleEffects(existing.Items).Reverse()); err != nil {
			return err
		}

		// Marks follow position, not content. A billed line that is re-weighed or re-priced keeps
		// its mark and the posted bill keeps the figures it was issued with; the difference is
		// not re-billed. Lines past the old count start unbilled.
		lines := buildSaleLines(in.Items)
		for i := range lines {
			if i < len(existing.Items) {
				lines[i].SupplierBillID = existing.Items[i].SupplierBillID
			}
		}

		sale := saleHeader(in, lines)
		sale.ID = existing.ID
		sale.SaleNumber = existing.SaleNumber
		sale.Status = existing.Status
		sale.UpdatedBy = in.CreatedBy

		if err := s.saleRepo.UpdateHeader(tx, sale); err != nil {
			return err
		}
		if err := s.saleRepo.ReplaceLines(tx, existing.ID, lines); err != nil {
			return err
		}
		return s.ledger.Apply(tx, ledger.SaleEffects(lines))
	})
	if err != nil {
		logger.LogError(s.log, "sale", "Update", "update sale", id, err)
		return err
	}

	publish(s.notifier, "sale", "update", id.String())
	return nil
}

// Delete reverses the sale's effects and marks it deleted; rows stay for history.
func (s *saleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.loadLive(tx, id)
		if err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, ledger.SaleEffects(existing.Items).Reverse()); err != nil {
			return err
		}
		return s.saleRepo.SetStatus(tx, id, model.StatusDeleted)
	})
	if err != nil {
		logger.LogError(s.log, "sale", "Delete", "delete sale", id, err)
		return err
	}

	publish(s.notifier, "sale", "delete", id.String())
	return nil
}

func (s *saleService) Get(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "sale", id)
	}
	return sale, nil
}

func (s *saleService) List(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	return s.saleRepo.FindAll(ctx, filter)
}
