package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fish-ledger/internal/middleware"
	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"
	"fish-ledger/internal/service"
	"fish-ledger/pkg/config"
	"fish-ledger/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app    *fiber.App
	master service.MasterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "api.db"), SlowQuery: time.Second}
	db, err := database.Connect(cfg, log)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	itemRepo := repository.NewItemRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	ledger := service.NewLedger(itemRepo, customerRepo, supplierRepo)
	numbers := service.NewNumberingService(repository.NewSequenceRepo())

	master := service.NewMasterService(repository.NewCategoryRepo(db), itemRepo, customerRepo, supplierRepo,
		repository.NewSettingRepo(db), nil, log)
	sales := NewSaleHandler(service.NewSaleService(db, repository.NewSaleRepo(db), numbers, ledger, nil, log))
	bills := NewSupplierBillHandler(service.NewSupplierBillService(db, repository.NewSupplierBillRepo(db), numbers, ledger, nil, log))
	payments := NewPaymentHandler(service.NewPaymentService(db, repository.NewPaymentRepo(db), ledger, nil, log))

	app := fiber.New()
	app.Post("/sales", sales.Create)
	app.Get("/sales/:id", sales.Get)
	app.Delete("/sales/:id", sales.Delete)
	app.Get("/supplier-bills/preview", bills.Preview)
	app.Post("/payments", payments.Create)
	app.Get("/dashboard/stock-movement", NewReportHandler(service.NewReportService(repository.NewReportRepo(db), customerRepo, supplierRepo)).GetStockMovement)
	app.Get("/guarded", middleware.RequirePrivilege("sale:create"), func(c *fiber.Ctx) error { return ok(c, nil) })

	return &fixture{app: app, master: master}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (int, Response) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateSaleOverHTTP(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := &model.Item{Name: "Tuna", OpeningStock: decimal.NewFromInt(50)}
	require.NoError(t, f.master.CreateItem(ctx, item, "test"))
	customer := &model.Customer{Name: "Shop"}
	require.NoError(t, f.master.CreateCustomer(ctx, customer, "test"))

	status, res := f.do(t, http.MethodPost, "/sales", fiber.Map{
		"customer_id": customer.ID,
		"sale_date":   "2024-07-01",
		"items": []fiber.Map{
			{"item_id": item.ID, "customer_id": customer.ID, "weight": "12.5", "rate": 40},
		},
	})
	require.Equal(t, http.StatusCreated, status, res.Error)
	assert.True(t, res.Success)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, "SL-000001", data["saleNumber"])

	status, res = f.do(t, http.MethodGet, "/sales/"+data["id"].(string), nil)
	require.Equal(t, http.StatusOK, status)
	sale := res.Data.(map[string]interface{})
	assert.Equal(t, "SL-000001", sale["sale_number"])

	got, err := f.master.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(decimal.RequireFromString("37.5")))

	status, _ = f.do(t, http.MethodDelete, "/sales/"+data["id"].(string), nil)
	assert.Equal(t, http.StatusOK, status)
	status, res = f.do(t, http.MethodDelete, "/sales/"+data["id"].(string), nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, res.Success)
}

func TestSaleRequestValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"no lines", fiber.Map{"customer_id": uuid.New(), "sale_date": "2024-07-01", "items": []fiber.Map{}}},
		{"missing customer", fiber.Map{"sale_date": "2024-07-01", "items": []fiber.Map{{"item_id": uuid.New(), "weight": 1}}}},
		{"bad date", fiber.Map{"customer_id": uuid.New(), "sale_date": "01/07/2024", "items": []fiber.Map{{"item_id": uuid.New(), "weight": 1}}}},
		{"zero weight", fiber.Map{"customer_id": uuid.New(), "sale_date": "2024-07-01", "items": []fiber.Map{{"item_id": uuid.New(), "weight": 0}}}},
		{"negative rate", fiber.Map{"customer_id": uuid.New(), "sale_date": "2024-07-01", "items": []fiber.Map{{"item_id": uuid.New(), "weight": 1, "rate": -5}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := f.do(t, http.MethodPost, "/sales", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestErrorStatusMapping(t *testing.T) {
	f := newFixture(t)

	status, res := f.do(t, http.MethodGet, "/sales/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, res.Success)

	status, _ = f.do(t, http.MethodGet, "/sales/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// unknown item: the store rejects the stock update and the whole sale rolls back
	status, res = f.do(t, http.MethodPost, "/sales", fiber.Map{
		"customer_id": uuid.New(),
		"sale_date":   "2024-07-01",
		"items":       []fiber.Map{{"item_id": uuid.New(), "weight": 1, "rate": 1}},
	})
	assert.NotEqual(t, http.StatusCreated, status)
	assert.False(t, res.Success)

	status, _ = f.do(t, http.MethodPost, "/payments", fiber.Map{
		"party_type": "bank", "party_id": uuid.New(), "payment_date": "2024-07-01", "amount": 10,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodGet, "/guarded", nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestBillPreviewOverHTTP(t *testing.T) {
	f := newFixture(t)
	supplier := &model.Supplier{Name: "Boat 7", DefaultCommissionPct: decimal.NewFromInt(8)}
	require.NoError(t, f.master.CreateSupplier(context.Background(), supplier, "test"))

	status, res := f.do(t, http.MethodGet, "/supplier-bills/preview?supplier_id="+supplier.ID.String()+"&from=2024-07-01&to=2024-07-31", nil)
	require.Equal(t, http.StatusOK, status, res.Error)
	data := res.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{}, data["items"])
	assert.Equal(t, "8", data["defaultCommissionPct"])

	status, _ = f.do(t, http.MethodGet, "/supplier-bills/preview?supplier_id="+supplier.ID.String()+"&from=july", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStockMovementRejectsOversizedWindow(t *testing.T) {
	f := newFixture(t)

	for _, q := range []string{"100000000", "367", "0", "-3"} {
		status, res := f.do(t, http.MethodGet, "/dashboard/stock-movement?days="+q, nil)
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.False(t, res.Success)
	}

	status, res := f.do(t, http.MethodGet, "/dashboard/stock-movement?days=366", nil)
	require.Equal(t, http.StatusOK, status, res.Error)
	assert.Len(t, res.Data, 366)
}
