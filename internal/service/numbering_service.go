package service

import (
	"errors"
	"fmt"

	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"

	"gorm.io/gorm"
)

// Numbers handed out when a series has no counter row.
var fallbackNumbers = map[string]string{
	model.SeriesSale:         "SL-000001",
	model.SeriesPurchase:     "PO-000001",
	model.SeriesSupplierBill: "BILL-000001",
}

// NumberingService formats document numbers. Peek and Increment must run on the transaction
// that inserts the document.
type NumberingService interface {
	Peek(tx *gorm.DB, series string) (string, error)
	Increment(tx *gorm.DB, series string) error
}

type numberingService struct {
	seqRepo repository.SequenceRepository
}

func NewNumberingService(seqRepo repository.SequenceRepository) NumberingService {
	return &numberingService{seqRepo: seqRepo}
}

// Peek returns the number the next document of series will carry without consuming it.
func (s *numberingService) Peek(tx *gorm.DB, series string) (string, error) {
	seq, err := s.seqRepo.FindByName(tx, series)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if fb, ok := fallbackNumbers[series]; ok {
			return fb, nil
		}
		return "", fmt.Errorf("numbering: unknown series %q", series)
	}
	if err != nil {
		return "", err
	}
	return FormatNumber(seq.Prefix, seq.CurrentNumber+1, seq.NumberLength), nil
}

func (s *numberingService) Increment(tx *gorm.DB, series string) error {
	return s.seqRepo.Increment(tx, series)
}

// FormatNumber zero-pads n to length digits after prefix. Longer numbers are not truncated.
func FormatNumber(prefix string, n int64, length int) string {
	return fmt.Sprintf("%s%0*d", prefix, length, n)
}
