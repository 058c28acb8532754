package model

// NumberSequence is the counter row behind one document series.
type NumberSequence struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	Prefix        string `gorm:"type:varchar(10)" json:"prefix"`
	CurrentNumber int64  `gorm:"not null;default:0" json:"current_number"`
	NumberLength  int    `gorm:"not null;default:6" json:"number_length"`
}

const (
	SeriesSale         = "sale"
	SeriesPurchase     = "purchase"
	SeriesSupplierBill = "supplier_bill"
)

var DefaultNumberSequences = []NumberSequence{
	{Name: SeriesSale, Prefix: "SL-", NumberLength: 6},
	{Name: SeriesPurchase, Prefix: "PO-", NumberLength: 6},
	{Name: SeriesSupplierBill, Prefix: "BILL-", NumberLength: 6},
}
