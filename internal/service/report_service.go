package service

import (
	"context"
	"sort"
	"time"

	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovementData is one day of the stock chart.
type StockMovementData struct {
	Date     string          `json:"date"`
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
}

type StatementLine struct {
	Date         time.Time       `json:"date"`
	DocumentType string          `json:"document_type"`
	DocumentID   uuid.UUID       `json:"document_id"`
	Number       string          `json:"number"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
}

// Statement is a party's ledger between From and To. BroughtForward is the opening balance plus
// every posted movement dated before From; ClosingBalance is the balance after the last line.
type Statement struct {
	PartyType      model.PartyType `json:"party_type"`
	PartyID        uuid.UUID       `json:"party_id"`
	PartyName      string          `json:"party_name"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	BroughtForward decimal.Decimal `json:"brought_forward"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

type ReportService interface {
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
	GetStockMovement(ctx context.Context, days int) ([]StockMovementData, error)
	GetPartyStatement(ctx context.Context, partyType model.PartyType, partyID uuid.UUID, from, to time.Time) (*Statement, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

func NewReportService(reportRepo repository.ReportRepository, customerRepo repository.CustomerRepository, supplierRepo repository.SupplierRepository) ReportService {
	return &reportService{reportRepo: reportRepo, customerRepo: customerRepo, supplierRepo: supplierRepo}
}

func (s *reportService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.reportRepo.GetDashboardStats(ctx)
}

// GetStockMovement covers the last days days including today, one entry per day.
// MaxMovementDays bounds the stock movement window to one year.
const MaxMovementDays = 366

func (s *reportService) GetStockMovement(ctx context.Context, days int) ([]StockMovementData, error) {
	if days <= 0 {
		days = 7
	}
	if days > MaxMovementDays {
		days = MaxMovementDays
	}
	endDate := DateOnly(time.Now())
	startDate := endDate.AddDate(0, 0, -(days - 1))

	outbound, inbound, err := s.reportRepo.GetStockMovement(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*StockMovementData, days)
	results := make([]StockMovementData, days)
	for i := 0; i < days; i++ {
		key := startDate.AddDate(0, 0, i).Format("2006-01-02")
		results[i] = StockMovementData{Date: key}
		byDay[key] = &results[i]
	}
	for _, o := range outbound {
		if d, ok := byDay[o.Date.UTC().Format("2006-01-02")]; ok {
			d.Outbound = d.Outbound.Add(o.Weight)
		}
	}
	for _, in := range inbound {
		if d, ok := byDay[in.Date.UTC().Format("2006-01-02")]; ok {
			d.Inbound = d.Inbound.Add(in.Weight)
		}
	}
	return results, nil
}

func (s *reportService) GetPartyStatement(ctx context.Context, partyType model.PartyType, partyID uuid.UUID, from, to time.Time) (*Statement, error) {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return nil, invalid("to", "must not be before from")
	}

	st := &Statement{PartyType: partyType, PartyID: partyID, From: from, To: to, Lines: []StatementLine{}}
	var rows []repository.StatementRow

	switch partyType {
	case model.PartyCustomer:
		c, err := s.customerRepo.FindByID(ctx, partyID)
		if err != nil {
			return nil, notFound(err, "customer", partyID)
		}
		st.PartyName = c.Name
		st.BroughtForward = c.OpeningBalance
		if rows, err = s.reportRepo.GetCustomerEntries(ctx, partyID, to); err != nil {
			return nil, err
		}
	case model.PartySupplier:
		sup, err := s.supplierRepo.FindByID(ctx, partyID)
		if err != nil {
			return nil, notFound(err, "supplier", partyID)
		}
		st.PartyName = sup.Name
		st.BroughtForward = sup.OpeningBalance
		if rows, err = s.reportRepo.GetSupplierEntries(ctx, partyID, to); err != nil {
			return nil, err
		}
	default:
		return nil, invalid("party_type", "must be %q or %q", model.PartyCustomer, model.PartySupplier)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Number < rows[j].Number
	})

	balance := st.BroughtForward
	for _, r := range rows {
		if r.Date.Before(from) {
			st.BroughtForward = st.BroughtForward.Add(r.Delta)
			balance = st.BroughtForward
			continue
		}
		balance = balance.Add(r.Delta)
		st.Lines = append(st.Lines, StatementLine{
			Date:         r.Date,
			DocumentType: r.DocumentType,
			DocumentID:   r.DocumentID,
			Number:       r.Number,
			Amount:       r.Delta,
			Balance:      balance,
		})
	}
	st.ClosingBalance = balance
	return st, nil
}
