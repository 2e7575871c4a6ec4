package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(value string, n int64) DenominationQuantity {
	return DenominationQuantity{Value: decimal.RequireFromString(value), Quantity: n}
}

func TestDenominationCount_Total(t *testing.T) {
	t.Parallel()

	count := DenominationCount{
		qty("50", 1),
		qty("20", 1),
		qty("10", 1),
		qty("2", 1),
		qty("1", 1),
		qty("0.50", 1),
	}

	total, err := count.Total()
	require.NoError(t, err)
	assert.Equal(t, "83.50", total.StringFixed(2))

	again, err := count.Total()
	require.NoError(t, err)
	assert.True(t, total.Equal(again), "total must be deterministic")
}

func TestDenominationCount_EmptyIsZero(t *testing.T) {
	t.Parallel()

	total, err := DenominationCount{}.Total()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestDenominationCount_ZeroQuantityAllowed(t *testing.T) {
	t.Parallel()

	total, err := DenominationCount{qty("100", 0), qty("0.05", 3)}.Total()
	require.NoError(t, err)
	assert.Equal(t, "0.15", total.StringFixed(2))
}

func TestDenominationCount_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count DenominationCount
	}{
		{"unknown face value", DenominationCount{qty("3", 1)}},
		{"negative quantity", DenominationCount{qty("20", -1)}},
		{"duplicate face value", DenominationCount{qty("0.5", 1), qty("0.50", 2)}},
		{"quantity too large", DenominationCount{qty("1", MaxDenominationQuantity+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.count.Total()
			assert.ErrorIs(t, err, ErrInvalidDenomination)
		})
	}
}

func TestDenominations(t *testing.T) {
	t.Parallel()

	list := Denominations()
	require.NotEmpty(t, list)
	list[0].Kind = "MUTATED"

	d, ok := LookupDenomination(decimal.RequireFromString("500"))
	require.True(t, ok)
	assert.Equal(t, DenominationBill, d.Kind, "Denominations must return a copy")

	d, ok = LookupDenomination(decimal.RequireFromString("0.01"))
	require.True(t, ok)
	assert.Equal(t, DenominationCoin, d.Kind)
}
