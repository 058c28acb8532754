package ledger

import (
	"testing"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeSaleTotals(t *testing.T) {
	tests := []struct {
		name    string
		lines   []model.SaleItem
		net     string
		balance string
		weight  string
	}{
		{
			name:    "single line",
			lines:   []model.SaleItem{{Weight: d("30"), Rate: d("200")}},
			net:     "6000",
			balance: "6000",
			weight:  "30",
		},
		{
			name:    "fare and ice added to net",
			lines:   []model.SaleItem{{Weight: d("90"), Rate: d("200"), FareCharges: d("100"), IceCharges: d("50")}},
			net:     "18150",
			balance: "18150",
			weight:  "90",
		},
		{
			name: "cash and receipt reduce balance",
			lines: []model.SaleItem{
				{Weight: d("10"), Rate: d("150"), CashAmount: d("500")},
				{Weight: d("5.5"), Rate: d("100"), ReceiptAmount: d("50")},
			},
			net:     "2050",
			balance: "1500",
			weight:  "15.5",
		},
		{
			name:    "no lines",
			net:     "0",
			balance: "0",
			weight:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range tt.lines {
				PriceSaleLine(&tt.lines[i])
			}
			got := ComputeSaleTotals(tt.lines)
			assert.True(t, got.NetAmount.Equal(d(tt.net)), "net %s", got.NetAmount)
			assert.True(t, got.BalanceAmount.Equal(d(tt.balance)), "balance %s", got.BalanceAmount)
			assert.True(t, got.TotalWeight.Equal(d(tt.weight)), "weight %s", got.TotalWeight)
		})
	}
}

func TestComputePurchaseTotals(t *testing.T) {
	lines := []model.PurchaseItem{{Weight: d("50"), Rate: d("120")}}
	PricePurchaseLine(&lines[0])

	got := ComputePurchaseTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, got.NetAmount.Equal(d("6000")))
	assert.True(t, got.BalanceAmount.Equal(d("6000")))

	got = ComputePurchaseTotals(lines, d("200"), d("1000"), d("300"))
	assert.True(t, got.NetAmount.Equal(d("5800")))
	assert.True(t, got.BalanceAmount.Equal(d("5100")))
}

func TestPricePurchaseLineKeepsEnteredAmount(t *testing.T) {
	l := model.PurchaseItem{Weight: d("10"), Rate: d("100"), Amount: d("950")}
	PricePurchaseLine(&l)
	assert.True(t, l.Amount.Equal(d("950")))
}

func TestComputeBillTotals(t *testing.T) {
	got := ComputeBillTotals(BillCharges{
		GrossAmount:      d("10000"),
		CommissionPct:    d("7.5"),
		CoolieCharges:    d("100"),
		TransportCharges: d("200"),
		IceCharges:       d("50"),
		OtherCharges:     d("25"),
		AdvanceDeducted:  d("1000"),
		CashPaid:         d("500"),
	})
	assert.True(t, got.CommissionAmount.Equal(d("750")))
	assert.True(t, got.TotalCharges.Equal(d("1125")))
	assert.True(t, got.NetAmount.Equal(d("8875")))
	assert.True(t, got.BalanceAmount.Equal(d("7375")))
}

func TestSaleEffects(t *testing.T) {
	item := uuid.New()
	cust := uuid.New()
	lines := []model.SaleItem{
		{ItemID: item, CustomerID: &cust, Weight: d("10"), Rate: d("100"), FareCharges: d("20"), CashAmount: d("120")},
		{ItemID: item, Weight: d("5"), Rate: d("100")},
	}
	for i := range lines {
		PriceSaleLine(&lines[i])
	}

	effs := SaleEffects(lines)
	require.Len(t, effs, 3)
	assert.Equal(t, TargetItem, effs[0].Target)
	assert.True(t, effs[0].Delta.Equal(d("-10")))
	assert.Equal(t, TargetCustomer, effs[1].Target)
	assert.Equal(t, cust, effs[1].TargetID)
	assert.True(t, effs[1].Delta.Equal(d("900")))
	assert.True(t, effs[2].Delta.Equal(d("-5")))

	merged := effs.Merge()
	require.Len(t, merged, 2)
	assert.True(t, merged[0].Delta.Equal(d("-15")))
}

func TestPurchaseAndPaymentEffects(t *testing.T) {
	item := uuid.New()
	sup := uuid.New()
	effs := PurchaseEffects(sup, d("6000"), d("1000"), []model.PurchaseItem{{ItemID: item, Weight: d("50")}})
	require.Len(t, effs, 2)
	assert.True(t, effs[0].Delta.Equal(d("50")))
	assert.Equal(t, TargetSupplier, effs[1].Target)
	assert.True(t, effs[1].Delta.Equal(d("5000")))

	pay := PaymentEffects(model.Payment{PartyType: model.PartySupplier, PartyID: sup, Amount: d("400")})
	require.Len(t, pay, 1)
	assert.Equal(t, TargetSupplier, pay[0].Target)
	assert.True(t, pay[0].Delta.Equal(d("-400")))

	pay = PaymentEffects(model.Payment{PartyType: model.PartyCustomer, PartyID: sup, Amount: d("400")})
	assert.Equal(t, TargetCustomer, pay[0].Target)
}

func TestReverseCancelsOut(t *testing.T) {
	item := uuid.New()
	cust := uuid.New()
	lines := []model.SaleItem{
		{ItemID: item, CustomerID: &cust, Weight: d("12.5"), Rate: d("310"), IceCharges: d("15")},
	}
	PriceSaleLine(&lines[0])
	effs := SaleEffects(lines)

	assert.Empty(t, effs.Then(effs.Reverse()).Merge())
	assert.Len(t, effs, 2, "Reverse must not modify the receiver")
	assert.True(t, effs[0].Delta.IsNegative())
}

func TestUpdateWithSameLinesIsNoop(t *testing.T) {
	item := uuid.New()
	cust := uuid.New()
	lines := []model.SaleItem{{ItemID: item, CustomerID: &cust, Weight: d("3"), Rate: d("90")}}
	PriceSaleLine(&lines[0])

	old := SaleEffects(lines)
	assert.Empty(t, old.Reverse().Then(SaleEffects(lines)).Merge())
}

func TestPricingRoundsToStoredScale(t *testing.T) {
	tests := []struct {
		name   string
		weight string
		rate   string
		amount string
	}{
		{"half up", "12.345", "199.99", "2468.877"},
		{"small weight", "0.1", "199.99", "19.999"},
		{"entered weight beyond scale", "1.23456", "10", "12.35"},
		{"whole numbers untouched", "30", "200", "6000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := model.SaleItem{Weight: d(tt.weight), Rate: d(tt.rate)}
			PriceSaleLine(&sale)
			assert.True(t, sale.Amount.Equal(d(tt.amount)), "sale amount %s", sale.Amount)

			purchase := model.PurchaseItem{Weight: d(tt.weight), Rate: d(tt.rate)}
			PricePurchaseLine(&purchase)
			assert.True(t, purchase.Amount.Equal(d(tt.amount)), "purchase amount %s", purchase.Amount)
		})
	}
}

func TestStoredLineReversesCreateDelta(t *testing.T) {
	item := uuid.New()
	cust := uuid.New()
	line := model.SaleItem{ItemID: item, CustomerID: &cust, Weight: d("12.345"), Rate: d("199.99"), FareCharges: d("0.0004")}
	PriceSaleLine(&line)
	created := SaleEffects([]model.SaleItem{line})

	// what the store hands back: every column already at three places
	stored := line
	stored.Amount = d("2468.877")
	stored.FareCharges = decimal.Zero

	assert.Empty(t, created.Then(SaleEffects([]model.SaleItem{stored}).Reverse()).Merge())
}

func TestTotalsStayOnScale(t *testing.T) {
	lines := []model.PurchaseItem{{Weight: d("12.345"), Rate: d("199.99")}, {Weight: d("0.2"), Rate: d("199.99")}}
	for i := range lines {
		PricePurchaseLine(&lines[i])
	}
	got := ComputePurchaseTotals(lines, d("0.0006"), d("100.0004"), decimal.Zero)
	assert.True(t, got.GrossAmount.Equal(d("2508.875")))
	assert.True(t, got.NetAmount.Equal(d("2508.874")))
	assert.True(t, got.BalanceAmount.Equal(d("2408.874")))

	bill := ComputeBillTotals(BillCharges{GrossAmount: d("2468.877"), CommissionPct: d("7.5")})
	assert.True(t, bill.CommissionAmount.Equal(d("185.166")))
	assert.True(t, bill.NetAmount.Equal(d("2283.711")))
}
