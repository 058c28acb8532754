package service

import (
	"testing"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// consignedSale records a sale of the supplier's fish on date.
func (e *testEnv) consignedSale(t *testing.T, supplierID, itemID, customerID uuid.UUID, date, weight, rate string) *CreateResult {
	t.Helper()
	res, err := e.sales.Create(e.ctx, SaleInput{
		CustomerID: customerID,
		SupplierID: &supplierID,
		SaleDate:   day(date),
		Items:      []SaleLineInput{{ItemID: itemID, Weight: d(weight), Rate: d(rate)}},
	})
	require.NoError(t, err)
	return res
}

func TestBillPreviewEmptyRange(t *testing.T) {
	env := newTestEnv(t)
	sup := env.supplier(t, "Boat 7", "10")

	p, err := env.bills.GeneratePreview(env.ctx, sup.ID, day("2024-05-01"), day("2024-05-31"))
	require.NoError(t, err)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	requireDec(t, "0", p.TotalWeight)
	requireDec(t, "0", p.GrossAmount)
	requireDec(t, "10", p.DefaultCommissionPct)
	requireDec(t, "500", p.SupplierAdvance)
}

func TestBillPreviewSelectsUnbilledPostedLines(t *testing.T) {
	env := newTestEnv(t)
	fish := env.item(t, "Tuna", "1000")
	buyer := env.customer(t, "Buyer")
	sup := env.supplier(t, "Boat 7", "10")
	other := env.supplier(t, "Boat 9", "10")

	env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-03", "10", "100")
	env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-01", "5", "200")
	env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-06-01", "7", "100")
	env.consignedSale(t, other.ID, fish.ID, buyer.ID, "2024-05-02", "9", "100")
	deleted := env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-04", "3", "100")
	require.NoError(t, env.sales.Delete(env.ctx, deleted.ID))

	p, err := env.bills.GeneratePreview(env.ctx, sup.ID, day("2024-05-01"), day("2024-05-31"))
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.True(t, p.Items[0].SaleDate.Equal(day("2024-05-01")), "ordered by sale date")
	assert.Equal(t, "Tuna", p.Items[0].ItemName)
	requireDec(t, "15", p.TotalWeight)
	requireDec(t, "2000", p.GrossAmount)
}

func TestBillCreateMarksLinesAndCreditsSupplier(t *testing.T) {
	env := newTestEnv(t)
	fish := env.item(t, "Tuna", "1000")
	buyer := env.customer(t, "Buyer")
	sup := env.supplier(t, "Boat 7", "10")

	env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-03", "10", "100")
	env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-10", "5", "200")
	outside := env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-06-02", "1", "100")

	res, err := env.bills.Create(env.ctx, BillInput{
		SupplierID:      sup.ID,
		BillDate:        day("2024-05-31"),
		DateFrom:        day("2024-05-01"),
		DateTo:          day("2024-05-31"),
		CoolieCharges:   d("50"),
		IceCharges:      d("30"),
		AdvanceDeducted: d("500"),
		CashPaid:        d("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BILL-000001", res.Number)

	bill, err := env.bills.Get(env.ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, bill.Status)
	requireDec(t, "15", bill.TotalWeight)
	requireDec(t, "2000", bill.GrossAmount)
	requireDec(t, "10", bill.CommissionPct)
	requireDec(t, "200", bill.CommissionAmount)
	requireDec(t, "280", bill.TotalCharges)
	requireDec(t, "1720", bill.NetAmount)
	requireDec(t, "1120", bill.BalanceAmount)
	requireDec(t, "1120", env.supplierBalance(t, sup.ID))

	// Billed lines never show up again.
	p, err := env.bills.GeneratePreview(env.ctx, sup.ID, day("2024-05-01"), day("2024-05-31"))
	require.NoError(t, err)
	assert.Empty(t, p.Items)

	var billed int64
	require.NoError(t, env.db.Model(&model.SaleItem{}).Where("supplier_bill_id = ?", res.ID).Count(&billed).Error)
	assert.EqualValues(t, 2, billed)

	outsideSale, err := env.sales.Get(env.ctx, outside.ID)
	require.NoError(t, err)
	assert.Nil(t, outsideSale.Items[0].SupplierBillID)
}

func TestBillCommissionOverride(t *testing.T) {
	env := newTestEnv(t)
	fish := env.item(t, "Tuna", "1000")
	buyer := env.customer(t, "Buyer")
	sup := env.supplier(t, "Boat 7", "10")
	env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-03", "10", "100")

	res, err := env.bills.Create(env.ctx, BillInput{
		SupplierID:    sup.ID,
		BillDate:      day("2024-05-31"),
		DateFrom:      day("2024-05-01"),
		DateTo:        day("2024-05-31"),
		CommissionPct: ptr(d("5")),
	})
	require.NoError(t, err)

	bill, err := env.bills.Get(env.ctx, res.ID)
	require.NoError(t, err)
	requireDec(t, "50", bill.CommissionAmount)
	requireDec(t, "950", bill.BalanceAmount)
}

func TestSaleUpdateKeepsBillMarks(t *testing.T) {
	env := newTestEnv(t)
	fish := env.item(t, "Tuna", "1000")
	buyer := env.customer(t, "Buyer")
	sup := env.supplier(t, "Boat 7", "10")
	sale := env.consignedSale(t, sup.ID, fish.ID, buyer.ID, "2024-05-03", "10", "100")

	billed, err := env.bills.Create(env.ctx, BillInput{
		SupplierID: sup.ID,
		BillDate:   day("2024-05-31"),
		DateFrom:   day("2024-05-01"),
		DateTo:     day("2024-05-31"),
	})
	require.NoError(t, err)
	requireDec(t, "900", env.supplierBalance(t, sup.ID))

	// the billed line is re-weighed and a second line is added
	require.NoError(t, env.sales.Update(env.ctx, sale.ID, SaleInput{
		CustomerID: buyer.ID,
		SupplierID: &sup.ID,
		SaleDate:   day("2024-05-03"),
		Items: []SaleLineInput{
			{ItemID: fish.ID, Weight: d("11"), Rate: d("100")},
			{ItemID: fish.ID, Weight: d("2"), Rate: d("100")},
		},
	}))

	updated, err := env.sales.Get(env.ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	require.NotNil(t, updated.Items[0].SupplierBillID, "the line at the billed position keeps its mark")
	assert.Equal(t, billed.ID, *updated.Items[0].SupplierBillID)
	requireDec(t, "11", updated.Items[0].Weight)
	assert.Nil(t, updated.Items[1].SupplierBillID)

	// a posted bill is a settled statement: its figures and the supplier balance stay as billed
	bill, err := env.bills.Get(env.ctx, billed.ID)
	require.NoError(t, err)
	requireDec(t, "10", bill.TotalWeight)
	requireDec(t, "1000", bill.GrossAmount)
	requireDec(t, "900", env.supplierBalance(t, sup.ID))

	p, err := env.bills.GeneratePreview(env.ctx, sup.ID, day("2024-05-01"), day("2024-05-31"))
	require.NoError(t, err)
	require.Len(t, p.Items, 1, "only the added line is left to bill")
	requireDec(t, "2", p.Items[0].Weight)
	requireDec(t, "200", p.GrossAmount)
}

func TestBillUpdateAndDeleteOnlyTouchDrafts(t *testing.T) {
	env := newTestEnv(t)
	sup := env.supplier(t, "Boat 7", "10")

	draft := &model.SupplierBill{
		BillNumber:    "BILL-DRAFT",
		SupplierID:    sup.ID,
		BillDate:      day("2024-05-31"),
		DateFrom:      day("2024-05-01"),
		DateTo:        day("2024-05-31"),
		GrossAmount:   d("1000"),
		CommissionPct: d("10"),
		Status:        model.StatusDraft,
	}
	require.NoError(t, env.db.Create(draft).Error)

	applied, err := env.bills.Update(env.ctx, draft.ID, BillInput{
		BillDate:      day("2024-05-31"),
		DateFrom:      day("2024-05-01"),
		DateTo:        day("2024-05-31"),
		OtherCharges:  d("40"),
		Notes:         "revised",
		CommissionPct: ptr(d("8")),
	})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := env.bills.Get(env.ctx, draft.ID)
	require.NoError(t, err)
	requireDec(t, "80", got.CommissionAmount)
	requireDec(t, "880", got.BalanceAmount)
	assert.Equal(t, "revised", got.Notes)
	requireDec(t, "0", env.supplierBalance(t, sup.ID), "draft edits never move balances")

	applied, err = env.bills.Delete(env.ctx, draft.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	got, err = env.bills.Get(env.ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, got.Status)

	// A deleted bill is no longer a draft.
	applied, err = env.bills.Update(env.ctx, draft.ID, BillInput{Notes: "again"})
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = env.bills.Delete(env.ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = env.bills.Update(env.ctx, uuid.New(), BillInput{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostedBillIgnoresUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	sup := env.supplier(t, "Boat 7", "10")

	res, err := env.bills.Create(env.ctx, BillInput{
		SupplierID: sup.ID,
		BillDate:   day("2024-05-31"),
		DateFrom:   day("2024-05-01"),
		DateTo:     day("2024-05-31"),
		Notes:      "original",
	})
	require.NoError(t, err)

	applied, err := env.bills.Update(env.ctx, res.ID, BillInput{Notes: "changed"})
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = env.bills.Delete(env.ctx, res.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	bill, err := env.bills.Get(env.ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, bill.Status)
	assert.Equal(t, "original", bill.Notes)
}
