package repository

import (
	"fmt"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// adjustColumn adds delta to a running column in place and rounds the result back onto the column
// scale. SQLite keeps fractional decimal columns as REAL, so without the ROUND repeated
// add/reverse cycles leave binary residue behind. A missing row reports gorm.ErrRecordNotFound
// so the surrounding transaction rolls back instead of silently skipping the effect.
func adjustColumn(tx *gorm.DB, table interface{}, id uuid.UUID, column string, delta decimal.Decimal) error {
	expr := gorm.Expr(fmt.Sprintf("ROUND(%s + ?, %d)", column, model.Scale), delta.Round(model.Scale))
	res := tx.Model(table).Where("id = ?", id).Update(column, expr)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// taken reports whether another row already uses value in column.
func taken(db *gorm.DB, table interface{}, column, value string, exceptID uuid.UUID) (bool, error) {
	var count int64
	q := db.Model(table).Where(column+" = ?", value)
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
