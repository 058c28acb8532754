// Package ledger holds the pure bookkeeping rules of the fish ledger: which running totals a
// document moves, by how much, and how document totals are derived from their lines.
//
// Nothing here touches the store. Services turn Effects into UPDATE statements inside the same
// transaction that writes the document, and undo a document by applying Effects.Reverse().
package ledger

import (
	"fmt"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Target string

const (
	TargetItem     Target = "item"
	TargetCustomer Target = "customer"
	TargetSupplier Target = "supplier"
)

const (
	FieldStock   = "current_stock"
	FieldBalance = "current_balance"
)

// Effect is one signed change to a running column.
type Effect struct {
	Target   Target
	TargetID uuid.UUID
	Field    string
	Delta    decimal.Decimal
}

func (e Effect) String() string {
	return fmt.Sprintf("%s:%s.%s%+s", e.Target, e.TargetID, e.Field, e.Delta.String())
}

type Effects []Effect

// Reverse negates every effect, so applying e and then e.Reverse() leaves all totals unchanged.
func (e Effects) Reverse() Effects {
	out := make(Effects, len(e))
	for i, eff := range e {
		eff.Delta = eff.Delta.Neg()
		out[i] = eff
	}
	return out
}

// Then appends other after e without modifying either.
func (e Effects) Then(other Effects) Effects {
	out := make(Effects, 0, len(e)+len(other))
	out = append(out, e...)
	return append(out, other...)
}

// Merge sums deltas that hit the same column and drops the ones that cancel out.
// Order follows the first occurrence of each column.
func (e Effects) Merge() Effects {
	type key struct {
		target Target
		id     uuid.UUID
		field  string
	}
	idx := make(map[key]int, len(e))
	var out Effects
	for _, eff := range e {
		k := key{eff.Target, eff.TargetID, eff.Field}
		if i, ok := idx[k]; ok {
			out[i].Delta = out[i].Delta.Add(eff.Delta)
			continue
		}
		idx[k] = len(out)
		out = append(out, eff)
	}

	merged := out[:0]
	for _, eff := range out {
		if !eff.Delta.IsZero() {
			merged = append(merged, eff)
		}
	}
	return merged
}

// SaleLineBalance is what a line adds to its own customer's balance.
func SaleLineBalance(l model.SaleItem) decimal.Decimal {
	return OnScale(l.Amount.Add(l.FareCharges).Add(l.IceCharges).Sub(l.CashAmount).Sub(l.ReceiptAmount))
}

// SaleEffects: every line takes its weight out of stock; only lines with their own customer move a balance.
func SaleEffects(lines []model.SaleItem) Effects {
	var effs Effects
	for _, l := range lines {
		effs = append(effs, Effect{Target: TargetItem, TargetID: l.ItemID, Field: FieldStock, Delta: l.Weight.Neg()})
		if l.CustomerID != nil {
			effs = append(effs, Effect{Target: TargetCustomer, TargetID: *l.CustomerID, Field: FieldBalance, Delta: SaleLineBalance(l)})
		}
	}
	return effs
}

// PurchaseEffects adds every line's weight to stock and what remains unpaid to the supplier's balance.
func PurchaseEffects(supplierID uuid.UUID, netAmount, cashPaid decimal.Decimal, lines []model.PurchaseItem) Effects {
	var effs Effects
	for _, l := range lines {
		effs = append(effs, Effect{Target: TargetItem, TargetID: l.ItemID, Field: FieldStock, Delta: l.Weight})
	}
	return append(effs, Effect{Target: TargetSupplier, TargetID: supplierID, Field: FieldBalance, Delta: OnScale(netAmount.Sub(cashPaid))})
}

func BillEffects(supplierID uuid.UUID, balanceAmount decimal.Decimal) Effects {
	return Effects{{Target: TargetSupplier, TargetID: supplierID, Field: FieldBalance, Delta: balanceAmount}}
}

// PaymentEffects lowers the party's balance by the amount settled.
func PaymentEffects(p model.Payment) Effects {
	target := TargetCustomer
	if p.PartyType == model.PartySupplier {
		target = TargetSupplier
	}
	return Effects{{Target: target, TargetID: p.PartyID, Field: FieldBalance, Delta: p.Amount.Neg()}}
}
