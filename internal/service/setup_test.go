package service

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"
	"fish-ledger/pkg/config"
	"fish-ledger/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	entity, action, id string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Publish(entity, action, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{entity, action, id})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type testEnv struct {
	ctx       context.Context
	db        *gorm.DB
	notifier  *recordingNotifier
	ledger    *Ledger
	numbers   NumberingService
	sales     SaleService
	purchases PurchaseService
	bills     SupplierBillService
	payments  PaymentService
	master    MasterService
	reports   ReportService
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:  "sqlite",
		DBPath:    filepath.Join(t.TempDir(), "ledger.db"),
		SlowQuery: time.Second,
	}
	db, err := database.Connect(cfg, quietLogger())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := quietLogger()
	n := &recordingNotifier{}

	itemRepo := repository.NewItemRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	l := NewLedger(itemRepo, customerRepo, supplierRepo)
	numbers := NewNumberingService(repository.NewSequenceRepo())

	return &testEnv{
		ctx:       context.Background(),
		db:        db,
		notifier:  n,
		ledger:    l,
		numbers:   numbers,
		sales:     NewSaleService(db, repository.NewSaleRepo(db), numbers, l, n, log),
		purchases: NewPurchaseService(db, repository.NewPurchaseRepo(db), numbers, l, n, log),
		bills:     NewSupplierBillService(db, repository.NewSupplierBillRepo(db), numbers, l, n, log),
		payments:  NewPaymentService(db, repository.NewPaymentRepo(db), l, n, log),
		master: NewMasterService(repository.NewCategoryRepo(db), itemRepo, customerRepo, supplierRepo,
			repository.NewSettingRepo(db), n, log),
		reports: NewReportService(repository.NewReportRepo(db), customerRepo, supplierRepo),
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.Truef(t, got.Equal(d(want)), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func (e *testEnv) item(t *testing.T, name, stock string) *model.Item {
	t.Helper()
	it := &model.Item{Name: name, OpeningStock: d(stock), UnitPrice: d("100")}
	require.NoError(t, e.master.CreateItem(e.ctx, it, "test"))
	return it
}

func (e *testEnv) customer(t *testing.T, name string) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: name}
	require.NoError(t, e.master.CreateCustomer(e.ctx, c, "test"))
	return c
}

func (e *testEnv) supplier(t *testing.T, name, commissionPct string) *model.Supplier {
	t.Helper()
	s := &model.Supplier{Name: name, DefaultCommissionPct: d(commissionPct), AdvanceAmount: d("500")}
	require.NoError(t, e.master.CreateSupplier(e.ctx, s, "test"))
	return s
}

func (e *testEnv) stock(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	it, err := e.master.GetItem(e.ctx, id)
	require.NoError(t, err)
	return it.CurrentStock
}

func (e *testEnv) customerBalance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	c, err := e.master.GetCustomer(e.ctx, id)
	require.NoError(t, err)
	return c.CurrentBalance
}

func (e *testEnv) supplierBalance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	s, err := e.master.GetSupplier(e.ctx, id)
	require.NoError(t, err)
	return s.CurrentBalance
}

func ptr[T any](v T) *T { return &v }
