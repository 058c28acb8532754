package service

import (
	"context"
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

// BillPreview is what a new bill for the range would cover.
type BillPreview struct {
	Items                []repository.BillPreviewLine `json:"items"`
	TotalWeight          decimal.Decimal              `json:"totalWeight"`
	GrossAmount          decimal.Decimal              `json:"grossAmount"`
	DefaultCommissionPct decimal.Decimal              `json:"defaultCommissionPct"`
	SupplierAdvance      decimal.Decimal              `json:"supplierAdvance"`
}

type BillInput struct {
	SupplierID uuid.UUID
	BillDate   time.Time
	DateFrom   time.Time
	DateTo     time.Time
	// CommissionPct falls back to the supplier's default when nil.
	CommissionPct    *decimal.Decimal
	CoolieCharges    decimal.Decimal
	TransportCharges decimal.Decimal
	IceCharges       decimal.Decimal
	OtherCharges     decimal.Decimal
	AdvanceDeducted  decimal.Decimal
	CashPaid         decimal.Decimal
	Notes            string
	CreatedBy        string
}

// onScale rounds the entered charges to the stored precision.
func (in BillInput) onScale() BillInput {
	if in.CommissionPct != nil {
		pct := ledger.OnScale(*in.CommissionPct)
		in.CommissionPct = &pct
	}
	in.CoolieCharges = ledger.OnScale(in.CoolieCharges)
	in.TransportCharges = ledger.OnScale(in.TransportCharges)
	in.IceCharges = ledger.OnScale(in.IceCharges)
	in.OtherCharges = ledger.OnScale(in.OtherCharges)
	in.AdvanceDeducted = ledger.OnScale(in.AdvanceDeducted)
	in.CashPaid = ledger.OnScale(in.CashPaid)
	return in
}

type SupplierBillService interface {
	GeneratePreview(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (*BillPreview, error)
	Create(ctx context.Context, in BillInput) (*CreateResult, error)
	Update(ctx context.Context, id uuid.UUID, in BillInput) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SupplierBill, error)
	List(ctx context.Context, supplierID *uuid.UUID, includeDeleted bool) ([]model.SupplierBill, error)
}

type supplierBillService struct {
	db       *gorm.DB
	billRepo repository.SupplierBillRepository
	numbers  NumberingService
	ledger   *Ledger
	notifier Notifier
	log      logrus.FieldLogger
}

func NewSupplierBillService(db *gorm.DB, billRepo repository.SupplierBillRepository, numbers NumberingService, l *Ledger, n Notifier, log logrus.FieldLogger) SupplierBillService {
	return &supplierBillService{
		db:       db,
		billRepo: billRepo,
		numbers:  numbers,
		ledger:   l,
		notifier: n,
		log:      log,
	}
}

func (s *supplierBillService) preview(tx *gorm.DB, supplierID uuid.UUID, from, to time.Time) (*BillPreview, error) {
	supplier, err := s.ledger.Suppliers.FindForLedger(tx, supplierID)
	if err != nil {
		return nil, notFound(err, "supplier", supplierID)
	}

	lines, err := s.billRepo.PreviewLines(tx, supplierID, DateOnly(from), DateOnly(to))
	if err != nil {
		return nil, err
	}

	if lines == nil {
		lines = []repository.BillPreviewLine{}
	}
	p := &BillPreview{
		Items:                lines,
		DefaultCommissionPct: supplier.DefaultCommissionPct,
		SupplierAdvance:      supplier.AdvanceAmount,
	}
	for _, l := range lines {
		p.TotalWeight = p.TotalWeight.Add(l.Weight)
		p.GrossAmount = p.GrossAmount.Add(l.Amount)
	}
	return p, nil
}

// GeneratePreview is read-only. Lines already on a bill are never offered again.
func (s *supplierBillService) GeneratePreview(ctx context.Context, supplierID uuid.UUID, from, to time.Time) (*BillPreview, error) {
	return s.preview(s.db.WithContext(ctx), supplierID, from, to)
}

func billCharges(in BillInput, gross, defaultPct decimal.Decimal) (decimal.Decimal, ledger.BillTotals) {
	pct := defaultPct
	if in.CommissionPct != nil {
		pct = *in.CommissionPct
	}
	return pct, ledger.ComputeBillTotals(ledger.BillCharges{
		GrossAmount:      gross,
		CommissionPct:    pct,
		CoolieCharges:    in.CoolieCharges,
		TransportCharges: in.TransportCharges,
		IceCharges:       in.IceCharges,
		OtherCharges:     in.OtherCharges,
		AdvanceDeducted:  in.AdvanceDeducted,
		CashPaid:         in.CashPaid,
	})
}

// Create bills every unbilled posted line in the range and marks those lines with the new bill,
// all in one transaction. Weight and gross come from the lines themselves.
func (s *supplierBillService) Create(ctx context.Context, in BillInput) (*CreateResult, error) {
	var bill *model.SupplierBill
	in = in.onScale()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		from, to := DateOnly(in.DateFrom), DateOnly(in.DateTo)
		p, err := s.preview(tx, in.SupplierID, from, to)
		if err != nil {
			return err
		}

		number, err := s.numbers.Peek(tx, model.SeriesSupplierBill)
		if err != nil {
			return err
		}

		pct, t := billCharges(in, p.GrossAmount, p.DefaultCommissionPct)
		bill = &model.SupplierBill{
			BillNumber:       number,
			SupplierID:       in.SupplierID,
			BillDate:         DateOnly(in.BillDate),
			DateFrom:         from,
			DateTo:           to,
			TotalWeight:      p.TotalWeight,
			GrossAmount:      p.GrossAmount,
			CommissionPct:    pct,
			CommissionAmount: t.CommissionAmount,
			CoolieCharges:    in.CoolieCharges,
			TransportCharges: in.TransportCharges,
			IceCharges:       in.IceCharges,
			OtherCharges:     in.OtherCharges,
			TotalCharges:     t.TotalCharges,
			NetAmount:        t.NetAmount,
			AdvanceDeducted:  in.AdvanceDeducted,
			CashPaid:         in.CashPaid,
			BalanceAmount:    t.BalanceAmount,
			Notes:            in.Notes,
			Status:           model.StatusPosted,
		}
		bill.CreatedBy = in.CreatedBy
		bill.UpdatedBy = in.CreatedBy

		if err := s.billRepo.Create(tx, bill); err != nil {
			return err
		}
		if err := s.numbers.Increment(tx, model.SeriesSupplierBill); err != nil {
			return err
		}
		if err := s.ledger.Apply(tx, ledger.BillEffects(bill.SupplierID, bill.BalanceAmount)); err != nil {
			return err
		}

		marked, err := s.billRepo.MarkLinesBilled(tx, in.SupplierID, from, to, bill.ID)
		if err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{"bill": number, "lines": marked}).Debug("sale lines billed")
		return nil
	})
	if err != nil {
		logger.LogError(s.log, "supplier_bill", "Create", "create supplier bill", in.SupplierID, err)
		return nil, err
	}

	publish(s.notifier, "supplier_bill", "create", bill.ID.String())
	return &CreateResult{ID: bill.ID, Number: bill.BillNumber}, nil
}

// Update rewrites a draft bill's charges. Posted and deleted bills are left untouched and
// the call reports false. No balance or billed-line changes happen here.
func (s *supplierBillService) Update(ctx context.Context, id uuid.UUID, in BillInput) (bool, error) {
	applied := false
	in = in.onScale()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.billRepo.FindByID(tx, id)
		if err != nil {
			return notFound(err, "supplier bill", id)
		}
		if existing.Status != model.StatusDraft {
			return nil
		}

		pct, t := billCharges(in, existing.GrossAmount, existing.CommissionPct)
		existing.BillDate = DateOnly(in.BillDate)
		existing.DateFrom = DateOnly(in.DateFrom)
		existing.DateTo = DateOnly(in.DateTo)
		existing.CommissionPct = pct
		existing.CommissionAmount = t.CommissionAmount
		existing.CoolieCharges = in.CoolieCharges
		existing.TransportCharges = in.TransportCharges
		existing.IceCharges = in.IceCharges
		existing.OtherCharges = in.OtherCharges
		existing.TotalCharges = t.TotalCharges
		existing.NetAmount = t.NetAmount
		existing.AdvanceDeducted = in.AdvanceDeducted
		existing.CashPaid = in.CashPaid
		existing.BalanceAmount = t.BalanceAmount
		existing.Notes = in.Notes
		existing.UpdatedBy = in.CreatedBy

		if err := s.billRepo.Update(tx, existing); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		logger.LogError(s.log, "supplier_bill", "Update", "update supplier bill", id, err)
		return false, err
	}

	if applied {
		publish(s.notifier, "supplier_bill", "update", id.String())
	}
	return applied, nil
}

// Delete only affects draft bills.
func (s *supplierBillService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	applied := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.billRepo.FindByID(tx, id)
		if err != nil {
			return notFound(err, "supplier bill", id)
		}
		if existing.Status != model.StatusDraft {
			return nil
		}
		if err := s.billRepo.SetStatus(tx, id, model.StatusDeleted); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		logger.LogError(s.log, "supplier_bill", "Delete", "delete supplier bill", id, err)
		return false, err
	}

	if applied {
		publish(s.notifier, "supplier_bill", "delete", id.String())
	}
	return applied, nil
}

func (s *supplierBillService) Get(ctx context.Context, id uuid.UUID) (*model.SupplierBill, error) {
	bill, err := s.billRepo.FindByID(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "supplier bill", id)
	}
	return bill, nil
}

func (s *supplierBillService) List(ctx context.Context, supplierID *uuid.UUID, includeDeleted bool) ([]model.SupplierBill, error) {
	return s.billRepo.FindAll(ctx, supplierID, includeDeleted)
}
