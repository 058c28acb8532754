package ledger

import (
	"fish-ledger/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// OnScale rounds d to the precision the store keeps. Every value that feeds a running total goes
// through it first, so the delta applied on create is exactly the one recomputed from the stored
// row on reversal.
func OnScale(d decimal.Decimal) decimal.Decimal {
	return d.Round(model.Scale)
}

type SaleTotals struct {
	TotalWeight   decimal.Decimal
	GrossAmount   decimal.Decimal
	FareCharges   decimal.Decimal
	IceCharges    decimal.Decimal
	CashReceived  decimal.Decimal
	ReceiptAmount decimal.Decimal
	NetAmount     decimal.Decimal
	BalanceAmount decimal.Decimal
}

// PriceSaleLine brings the entered figures onto scale and sets the line amount to weight × rate.
func PriceSaleLine(l *model.SaleItem) {
	l.Weight = OnScale(l.Weight)
	l.Rate = OnScale(l.Rate)
	l.FareCharges = OnScale(l.FareCharges)
	l.IceCharges = OnScale(l.IceCharges)
	l.CashAmount = OnScale(l.CashAmount)
	l.ReceiptAmount = OnScale(l.ReceiptAmount)
	l.Amount = OnScale(l.Weight.Mul(l.Rate))
}

// ComputeSaleTotals expects priced lines.
func ComputeSaleTotals(lines []model.SaleItem) SaleTotals {
	var t SaleTotals
	for _, l := range lines {
		t.TotalWeight = t.TotalWeight.Add(l.Weight)
		t.GrossAmount = t.GrossAmount.Add(l.Amount)
		t.FareCharges = t.FareCharges.Add(l.FareCharges)
		t.IceCharges = t.IceCharges.Add(l.IceCharges)
		t.CashReceived = t.CashReceived.Add(l.CashAmount)
		t.ReceiptAmount = t.ReceiptAmount.Add(l.ReceiptAmount)
	}
	t.NetAmount = t.GrossAmount.Add(t.FareCharges).Add(t.IceCharges)
	t.BalanceAmount = t.NetAmount.Sub(t.CashReceived).Sub(t.ReceiptAmount)
	return t
}

type PurchaseTotals struct {
	TotalWeight   decimal.Decimal
	GrossAmount   decimal.Decimal
	NetAmount     decimal.Decimal
	BalanceAmount decimal.Decimal
}

// PricePurchaseLine fills Amount from weight × rate unless the caller entered an amount.
func PricePurchaseLine(l *model.PurchaseItem) {
	l.Weight = OnScale(l.Weight)
	l.Rate = OnScale(l.Rate)
	if l.Amount.IsZero() {
		l.Amount = l.Weight.Mul(l.Rate)
	}
	l.Amount = OnScale(l.Amount)
}

func ComputePurchaseTotals(lines []model.PurchaseItem, concession, cashPaid, previousBalance decimal.Decimal) PurchaseTotals {
	var t PurchaseTotals
	for _, l := range lines {
		t.TotalWeight = t.TotalWeight.Add(l.Weight)
		t.GrossAmount = t.GrossAmount.Add(l.Amount)
	}
	t.NetAmount = OnScale(t.GrossAmount.Sub(OnScale(concession)))
	t.BalanceAmount = OnScale(t.NetAmount.Sub(OnScale(cashPaid)).Add(previousBalance))
	return t
}

// BillCharges is the charge breakdown entered on a supplier bill.
type BillCharges struct {
	GrossAmount      decimal.Decimal
	CommissionPct    decimal.Decimal
	CoolieCharges    decimal.Decimal
	TransportCharges decimal.Decimal
	IceCharges       decimal.Decimal
	OtherCharges     decimal.Decimal
	AdvanceDeducted  decimal.Decimal
	CashPaid         decimal.Decimal
}

type BillTotals struct {
	CommissionAmount decimal.Decimal
	TotalCharges     decimal.Decimal
	NetAmount        decimal.Decimal
	BalanceAmount    decimal.Decimal
}

// ComputeBillTotals derives what the trader still owes the supplier after commission, charges,
// the advance already given and cash handed over with the bill.
func ComputeBillTotals(c BillCharges) BillTotals {
	var t BillTotals
	t.CommissionAmount = OnScale(c.GrossAmount.Mul(c.CommissionPct).Div(hundred))
	t.TotalCharges = OnScale(t.CommissionAmount.
		Add(c.CoolieCharges).
		Add(c.TransportCharges).
		Add(c.IceCharges).
		Add(c.OtherCharges))
	t.NetAmount = OnScale(c.GrossAmount.Sub(t.TotalCharges))
	t.BalanceAmount = OnScale(t.NetAmount.Sub(c.AdvanceDeducted).Sub(c.CashPaid))
	return t
}
