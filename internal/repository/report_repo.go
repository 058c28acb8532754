package repository

import (
	"context"
	"time"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]DailyWeight, []DailyWeight, error)
	GetCustomerEntries(ctx context.Context, customerID uuid.UUID, until time.Time) ([]StatementRow, error)
	GetSupplierEntries(ctx context.Context, supplierID uuid.UUID, until time.Time) ([]StatementRow, error)
}

// DashboardStats for the overview cards
type DashboardStats struct {
	TotalItems       int64           `json:"total_items"`
	TotalCustomers   int64           `json:"total_customers"`
	TotalSuppliers   int64           `json:"total_suppliers"`
	StockOnHand      decimal.Decimal `json:"stock_on_hand"`
	TotalReceivable  decimal.Decimal `json:"total_receivable"`
	TotalPayable     decimal.Decimal `json:"total_payable"`
	PostedSalesToday int64           `json:"posted_sales_today"`
}

// DailyWeight is the summed line weight of posted documents on one date.
type DailyWeight struct {
	Date   time.Time
	Weight decimal.Decimal
}

// StatementRow is one posted document as it moved a party balance.
type StatementRow struct {
	DocumentID   uuid.UUID
	DocumentType string
	Number       string
	Date         time.Time
	Delta        decimal.Decimal
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Item{}).Where("is_active = ?", true).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Customer{}).Where("is_active = ?", true).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Supplier{}).Where("is_active = ?", true).Count(&stats.TotalSuppliers).Error; err != nil {
		return nil, err
	}

	var sum struct{ Total decimal.Decimal }
	if err := db.Model(&model.Item{}).Select("COALESCE(SUM(current_stock), 0) AS total").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.StockOnHand = sum.Total

	sum.Total = decimal.Zero
	if err := db.Model(&model.Customer{}).Select("COALESCE(SUM(current_balance), 0) AS total").
		Where("current_balance > 0").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.TotalReceivable = sum.Total

	sum.Total = decimal.Zero
	if err := db.Model(&model.Supplier{}).Select("COALESCE(SUM(current_balance), 0) AS total").
		Where("current_balance > 0").Scan(&sum).Error; err != nil {
		return nil, err
	}
	stats.TotalPayable = sum.Total

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := db.Model(&model.Sale{}).Where("status = ? AND sale_date = ?", model.StatusPosted, today).
		Count(&stats.PostedSalesToday).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetStockMovement returns outbound (sold) and inbound (purchased) weight per document date.
// Document dates are stored at midnight, so grouping on the column groups by day.
func (r *reportRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]DailyWeight, []DailyWeight, error) {
	var outbound, inbound []DailyWeight
	db := r.db.WithContext(ctx)

	err := db.Table("sale_items AS si").
		Select("s.sale_date AS date, COALESCE(SUM(si.weight), 0) AS weight").
		Joins("JOIN sales s ON s.id = si.sale_id").
		Where("s.status = ? AND s.sale_date BETWEEN ? AND ?", model.StatusPosted, startDate, endDate).
		Group("s.sale_date").
		Order("s.sale_date ASC").
		Scan(&outbound).Error
	if err != nil {
		return nil, nil, err
	}

	err = db.Table("purchase_items AS pi").
		Select("p.purchase_date AS date, COALESCE(SUM(pi.weight), 0) AS weight").
		Joins("JOIN purchases p ON p.id = pi.purchase_id").
		Where("p.status = ? AND p.purchase_date BETWEEN ? AND ?", model.StatusPosted, startDate, endDate).
		Group("p.purchase_date").
		Order("p.purchase_date ASC").
		Scan(&inbound).Error
	if err != nil {
		return nil, nil, err
	}

	return outbound, inbound, nil
}

// GetCustomerEntries lists every posted sale and payment that moved the customer's balance up to
// and including until. Sale amounts are the customer's own lines, matching how the ledger posts them.
func (r *reportRepo) GetCustomerEntries(ctx context.Context, customerID uuid.UUID, until time.Time) ([]StatementRow, error) {
	var sales []StatementRow
	db := r.db.WithContext(ctx)

	err := db.Table("sale_items AS si").
		Select(`s.id AS document_id, 'sale' AS document_type, s.sale_number AS number, s.sale_date AS date,
			COALESCE(SUM(si.amount + si.fare_charges + si.ice_charges - si.cash_amount - si.receipt_amount), 0) AS delta`).
		Joins("JOIN sales s ON s.id = si.sale_id").
		Where("si.customer_id = ? AND s.status = ? AND s.sale_date <= ?", customerID, model.StatusPosted, until).
		Group("s.id, s.sale_number, s.sale_date").
		Scan(&sales).Error
	if err != nil {
		return nil, err
	}

	payments, err := r.paymentEntries(db, model.PartyCustomer, customerID, until)
	if err != nil {
		return nil, err
	}
	return append(sales, payments...), nil
}

// GetSupplierEntries lists posted purchases, bills and payments for the supplier up to until.
func (r *reportRepo) GetSupplierEntries(ctx context.Context, supplierID uuid.UUID, until time.Time) ([]StatementRow, error) {
	var purchases, bills []StatementRow
	db := r.db.WithContext(ctx)

	err := db.Model(&model.Purchase{}).
		Select(`id AS document_id, 'purchase' AS document_type, purchase_number AS number,
			purchase_date AS date, net_amount - cash_paid AS delta`).
		Where("supplier_id = ? AND status = ? AND purchase_date <= ?", supplierID, model.StatusPosted, until).
		Scan(&purchases).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&model.SupplierBill{}).
		Select(`id AS document_id, 'supplier_bill' AS document_type, bill_number AS number,
			bill_date AS date, balance_amount AS delta`).
		Where("supplier_id = ? AND status = ? AND bill_date <= ?", supplierID, model.StatusPosted, until).
		Scan(&bills).Error
	if err != nil {
		return nil, err
	}

	payments, err := r.paymentEntries(db, model.PartySupplier, supplierID, until)
	if err != nil {
		return nil, err
	}

	rows := append(purchases, bills...)
	return append(rows, payments...), nil
}

func (r *reportRepo) paymentEntries(db *gorm.DB, partyType model.PartyType, partyID uuid.UUID, until time.Time) ([]StatementRow, error) {
	var payments []model.Payment
	err := db.Where("party_type = ? AND party_id = ? AND status = ? AND payment_date <= ?",
		partyType, partyID, model.StatusPosted, until).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	rows := make([]StatementRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, StatementRow{
			DocumentID:   p.ID,
			DocumentType: "payment",
			Number:       p.Reference,
			Date:         p.PaymentDate,
			Delta:        p.Amount.Neg(),
		})
	}
	return rows, nil
}
