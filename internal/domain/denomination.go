package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DenominationKind tells bills from coins.
type DenominationKind string

const (
	DenominationBill DenominationKind = "BILL"
	DenominationCoin DenominationKind = "COIN"
)

// Denomination is one face value accepted in a drawer count.
type Denomination struct {
	Value decimal.Decimal
	Kind  DenominationKind
}

// MaxDenominationQuantity bounds a single line of a count.
const MaxDenominationQuantity = 1_000_000

var denominations = []Denomination{
	{decimal.RequireFromString("500"), DenominationBill},
	{decimal.RequireFromString("200"), DenominationBill},
	{decimal.RequireFromString("100"), DenominationBill},
	{decimal.RequireFromString("50"), DenominationBill},
	{decimal.RequireFromString("20"), DenominationBill},
	{decimal.RequireFromString("10"), DenominationBill},
	{decimal.RequireFromString("5"), DenominationBill},
	{decimal.RequireFromString("2"), DenominationCoin},
	{decimal.RequireFromString("1"), DenominationCoin},
	{decimal.RequireFromString("0.50"), DenominationCoin},
	{decimal.RequireFromString("0.20"), DenominationCoin},
	{decimal.RequireFromString("0.10"), DenominationCoin},
	{decimal.RequireFromString("0.05"), DenominationCoin},
	{decimal.RequireFromString("0.02"), DenominationCoin},
	{decimal.RequireFromString("0.01"), DenominationCoin},
}

// Denominations returns the accepted face values, largest first.
func Denominations() []Denomination {
	out := make([]Denomination, len(denominations))
	copy(out, denominations)
	return out
}

// LookupDenomination finds the denomination with face value v.
func LookupDenomination(v decimal.Decimal) (Denomination, bool) {
	for _, d := range denominations {
		if d.Value.Equal(v) {
			return d, true
		}
	}
	return Denomination{}, false
}

// DenominationQuantity is one line of a drawer count.
type DenominationQuantity struct {
	Value    decimal.Decimal
	Quantity int64
}

// DenominationCount is a full drawer count.
type DenominationCount []DenominationQuantity

// Validate rejects unknown face values, repeated face values and
// quantities outside [0, MaxDenominationQuantity].
func (c DenominationCount) Validate() error {
	seen := make(map[string]bool, len(c))
	for _, line := range c {
		d, ok := LookupDenomination(line.Value)
		if !ok {
			return fmt.Errorf("%w: unknown face value %s", ErrInvalidDenomination, line.Value.String())
		}
		key := d.Value.StringFixed(2)
		if seen[key] {
			return fmt.Errorf("%w: face value %s listed twice", ErrInvalidDenomination, key)
		}
		seen[key] = true
		if line.Quantity < 0 {
			return fmt.Errorf("%w: negative quantity %d for %s", ErrInvalidDenomination, line.Quantity, key)
		}
		if line.Quantity > MaxDenominationQuantity {
			return fmt.Errorf("%w: quantity %d for %s exceeds %d", ErrInvalidDenomination, line.Quantity, key, MaxDenominationQuantity)
		}
	}
	return nil
}

// Total returns Σ(face value × quantity). An empty count totals zero.
func (c DenominationCount) Total() (decimal.Decimal, error) {
	if err := c.Validate(); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Value.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total, nil
}
