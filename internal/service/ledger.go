package service

import (
	"fmt"
	"time"

	"fish-ledger/internal/ledger"
	"fish-ledger/internal/repository"

	"gorm.io/gorm"
)

// Notifier receives committed ledger changes. *ws.Hub implements it.
type Notifier interface {
	Publish(entity, action, id string)
}

// Ledger bundles the running-total repositories every document service writes through.
type Ledger struct {
	Items     repository.ItemRepository
	Customers repository.CustomerRepository
	Suppliers repository.SupplierRepository
}

func NewLedger(items repository.ItemRepository, customers repository.CustomerRepository, suppliers repository.SupplierRepository) *Ledger {
	return &Ledger{Items: items, Customers: customers, Suppliers: suppliers}
}

// Apply writes effects through tx. Effects on the same column are summed first.
func (l *Ledger) Apply(tx *gorm.DB, effects ledger.Effects) error {
	for _, e := range effects.Merge() {
		var err error
		switch e.Target {
		case ledger.TargetItem:
			err = l.Items.AdjustStock(tx, e.TargetID, e.Delta)
		case ledger.TargetCustomer:
			err = l.Customers.AdjustBalance(tx, e.TargetID, e.Delta)
		case ledger.TargetSupplier:
			err = l.Suppliers.AdjustBalance(tx, e.TargetID, e.Delta)
		default:
			err = fmt.Errorf("ledger: unknown effect target %q", e.Target)
		}
		if err != nil {
			return notFound(err, string(e.Target), e.TargetID)
		}
	}
	return nil
}

// DateOnly truncates t to midnight UTC; every document date is stored that way.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func publish(n Notifier, entity, action, id string) {
	if n != nil {
		n.Publish(entity, action, id)
	}
}
