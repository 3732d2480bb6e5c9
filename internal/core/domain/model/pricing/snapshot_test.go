package pricing_test

import (
	"testing"

	"visadesk/internal/core/domain/model/pricing"
	"visadesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		price     string
		tax       string
		taxAmount string
		total     string
	}{
		{name: "ten percent of a round price", price: "100", tax: "0.1", taxAmount: "10.00", total: "110.00"},
		{name: "zero tax", price: "45.50", tax: "0", taxAmount: "0.00", total: "45.50"},
		{name: "free service", price: "0", tax: "0.2", taxAmount: "0.00", total: "0.00"},
		{name: "tax amount rounds half away from zero", price: "19.99", tax: "0.075", taxAmount: "1.50", total: "21.49"},
		{name: "tax amount rounds down below half", price: "10.01", tax: "0.12", taxAmount: "1.20", total: "11.21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := pricing.NewSnapshot(dec(tt.price), dec(tt.tax))

			require.NoError(t, err)
			assert.Equal(t, tt.taxAmount, s.TaxAmount().StringFixed(pricing.MoneyPlaces))
			assert.Equal(t, tt.total, s.Total().StringFixed(pricing.MoneyPlaces))
			assert.True(t, s.Total().Equal(s.Price().Add(s.TaxAmount())))
			assert.True(t, s.Tax().Equal(dec(tt.tax)))
		})
	}
}

func TestNewSnapshot_RejectsNegativeFigures(t *testing.T) {
	_, err := pricing.NewSnapshot(dec("-1"), dec("0.1"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "price")

	_, err = pricing.NewSnapshot(dec("1"), dec("-0.1"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "tax")
}

func TestSnapshot_Equal(t *testing.T) {
	a, err := pricing.NewSnapshot(dec("100"), dec("0.1"))
	require.NoError(t, err)
	b, err := pricing.NewSnapshot(dec("100.00"), dec("0.10"))
	require.NoError(t, err)
	c, err := pricing.NewSnapshot(dec("120"), dec("0.1"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "price=100.00 tax=0.1 tax_amount=10.00 total=110.00", a.String())
}

func TestRestoreSnapshot_KeepsStoredFigures(t *testing.T) {
	s := pricing.RestoreSnapshot(dec("100"), dec("0.1"), dec("10"), dec("110"))

	assert.Equal(t, "110.00", s.Total().StringFixed(pricing.MoneyPlaces))

	fresh, err := pricing.NewSnapshot(dec("100"), dec("0.1"))
	require.NoError(t, err)
	assert.True(t, s.Equal(fresh))
}
