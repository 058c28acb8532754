package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type lineRequest struct {
	Weight decimal.Decimal `validate:"gt=0"`
	Cash   decimal.Decimal `validate:"gte=0"`
	Date   string          `validate:"required,isodate"`
	Lines  []string        `validate:"required,min=1"`
}

func TestValidateStruct(t *testing.T) {
	ok := lineRequest{Weight: decimal.NewFromInt(3), Date: "2024-03-01", Lines: []string{"x"}}
	assert.Empty(t, ValidateStruct(ok))

	bad := lineRequest{Weight: decimal.Zero, Cash: decimal.NewFromInt(-1), Date: "01/03/2024"}
	errs := ValidateStruct(bad)
	tags := map[string]string{}
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	assert.Equal(t, "gt", tags["lineRequest.Weight"])
	assert.Equal(t, "gte", tags["lineRequest.Cash"])
	assert.Equal(t, "isodate", tags["lineRequest.Date"])
	assert.Equal(t, "required", tags["lineRequest.Lines"])
}
