package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in minor currency units (cents).
// Ledger arithmetic is done on Amount only; decimals exist at the boundaries.
type Amount int64

// AmountScale is the number of fractional digits carried by an Amount.
const AmountScale = 2

// MaxAmount bounds a single line amount so that sums over any realistic entry
// or trial balance cannot overflow int64.
const MaxAmount Amount = 1_000_000_000_000_00

// MaxEntryLines caps the lines of one entry; with MaxAmount it keeps entry sums below 1e17 minor units.
const MaxEntryLines = 1000

var minorUnitsPerMajor = decimal.New(1, AmountScale)

// ParseAmount converts a decimal major-unit value into minor units, keeping
// its sign. It rejects values with more than two fractional digits and values
// whose magnitude exceeds MaxAmount.
func ParseAmount(d decimal.Decimal) (Amount, error) {
	minor := d.Mul(minorUnitsPerMajor)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), AmountScale)
	}
	if minor.Abs().GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return 0, fmt.Errorf("amount %s exceeds the maximum allowed", d.String())
	}
	return Amount(minor.IntPart()), nil
}

// AmountFromDecimal is ParseAmount restricted to non-negative values.
func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %s must not be negative", d.String())
	}
	return ParseAmount(d)
}

// MustAmount parses a decimal string and panics on error. Intended for tests and seed data.
func MustAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	a, err := AmountFromDecimal(d)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -AmountScale)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a == 0
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(AmountScale)
}
