package pricing

import (
	"fmt"

	"visadesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every monetary column.
const MoneyPlaces int32 = 2

// Snapshot holds a base price, a tax rate and the two figures derived from
// them. It is a value object: attachments copy it instead of referencing the
// catalogue row, so later catalogue price changes never reach existing orders.
type Snapshot struct {
	price     decimal.Decimal
	tax       decimal.Decimal
	taxAmount decimal.Decimal
	total     decimal.Decimal
}

// NewSnapshot computes tax amount and total for the given price and tax rate.
// The price is normalised to MoneyPlaces; the tax amount is rounded half away
// from zero.
//
// Example:
//
//	s, _ := pricing.NewSnapshot(decimal.NewFromInt(100), decimal.RequireFromString("0.1"))
//	s.TaxAmount() // 10.00
//	s.Total()     // 110.00
func NewSnapshot(price, tax decimal.Decimal) (Snapshot, error) {
	if price.IsNegative() {
		return Snapshot{}, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if tax.IsNegative() {
		return Snapshot{}, errs.NewValueIsInvalidErrorWithCause("tax", fmt.Errorf("%s is negative", tax))
	}

	price = price.Round(MoneyPlaces)
	taxAmount := price.Mul(tax).Round(MoneyPlaces)

	return Snapshot{
		price:     price,
		tax:       tax,
		taxAmount: taxAmount,
		total:     price.Add(taxAmount),
	}, nil
}

// RestoreSnapshot rebuilds a snapshot frozen earlier, taking the stored
// figures as they are. Use it for attachments; catalogue prices always go
// through NewSnapshot.
func RestoreSnapshot(price, tax, taxAmount, total decimal.Decimal) Snapshot {
	return Snapshot{
		price:     price,
		tax:       tax,
		taxAmount: taxAmount,
		total:     total,
	}
}

// Price returns the base price.
func (s Snapshot) Price() decimal.Decimal {
	return s.price
}

// Tax returns the tax rate, e.g. 0.1 for ten percent.
func (s Snapshot) Tax() decimal.Decimal {
	return s.tax
}

// TaxAmount returns price × tax rounded to MoneyPlaces.
func (s Snapshot) TaxAmount() decimal.Decimal {
	return s.taxAmount
}

// Total returns price + tax amount.
func (s Snapshot) Total() decimal.Decimal {
	return s.total
}

// Equal compares all four figures numerically, ignoring scale.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.price.Equal(other.price) &&
		s.tax.Equal(other.tax) &&
		s.taxAmount.Equal(other.taxAmount) &&
		s.total.Equal(other.total)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("price=%s tax=%s tax_amount=%s total=%s",
		s.price.StringFixed(MoneyPlaces), s.tax, s.taxAmount.StringFixed(MoneyPlaces), s.total.StringFixed(MoneyPlaces))
}
