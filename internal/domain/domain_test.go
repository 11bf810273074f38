package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoney(decimal.RequireFromString("10.50"), " usd")
	b := NewMoney(decimal.RequireFromString("0.25"), "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "USD 10.75", sum.String())

	diff, err := b.Sub(a)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())

	_, err = a.Add(NewMoney(decimal.NewFromInt(1), "EUR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = a.Sub(ZeroMoney("LKR"))
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestNewHistoryEntry(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	rate := &ExchangeRate{
		BaseCurrency:     "USD",
		TargetCurrency:   "LKR",
		Rate:             decimal.NewFromInt(330),
		Source:           RateSourceManual,
		IsManualOverride: true,
	}

	t.Run("First rate", func(t *testing.T) {
		entry := NewHistoryEntry(rate, nil, at)
		assert.Nil(t, entry.PreviousRate)
		assert.Nil(t, entry.ChangePercentage)
		assert.Equal(t, at, entry.RecordedAt)
		assert.True(t, entry.IsManualOverride)
		assert.Equal(t, RateSourceManual, entry.Source)
	})

	t.Run("With previous rate", func(t *testing.T) {
		previous := &ExchangeRate{Rate: decimal.NewFromInt(325)}
		entry := NewHistoryEntry(rate, previous, at)
		require.NotNil(t, entry.PreviousRate)
		require.NotNil(t, entry.ChangePercentage)
		assert.Equal(t, "325", entry.PreviousRate.String())
		assert.Equal(t, "1.538", entry.ChangePercentage.StringFixed(3))
	})
}

func TestChangePercentage(t *testing.T) {
	tests := []struct {
		previous string
		current  string
		expected string
	}{
		{previous: "100", current: "110", expected: "10"},
		{previous: "0.85", current: "0.68", expected: "-20"},
		{previous: "2", current: "2", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.previous+"->"+tt.current, func(t *testing.T) {
			got := ChangePercentage(decimal.RequireFromString(tt.previous), decimal.RequireFromString(tt.current))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestInvalidCartError(t *testing.T) {
	err := fmt.Errorf("pricing: %w", NewInvalidLineError(2, "quantity must be positive, got %d", -1))

	assert.ErrorIs(t, err, ErrInvalidCart)
	assert.EqualError(t, err, "pricing: invalid cart: line 2: quantity must be positive, got -1")

	var cartErr *InvalidCartError
	require.True(t, errors.As(err, &cartErr))
	assert.Equal(t, 2, cartErr.Line)

	assert.EqualError(t, NewInvalidCartError("cart has no lines"), "invalid cart: cart has no lines")
}

func TestConditionEvaluationError(t *testing.T) {
	err := &ConditionEvaluationError{Condition: ConditionCardType, Operator: OperatorInArray, Reason: "missing list value"}
	assert.EqualError(t, err, "condition evaluation: card_type in_array: missing list value")

	err = &ConditionEvaluationError{Reason: "unknown condition type"}
	assert.EqualError(t, err, "condition evaluation: <empty type>: unknown condition type")
}

func TestPricedCartSnapshot_Round(t *testing.T) {
	snapshot := &PricedCartSnapshot{
		Currency:           "USD",
		Subtotal:           decimal.RequireFromString("150"),
		LineDiscountAmount: decimal.Zero,
		DiscountAmount:     decimal.RequireFromString("15"),
		TaxRate:            decimal.RequireFromString("8.75"),
		TaxAmount:          decimal.RequireFromString("11.8125"),
		Total:              decimal.RequireFromString("146.8125"),
		Lines: []CartLine{
			{ProductRef: "P-1", ComputedSubtotal: decimal.RequireFromString("150.004")},
		},
		AppliedDiscounts: []AppliedDiscount{{DiscountID: "d", Amount: decimal.RequireFromString("15.001")}},
	}

	rounded := snapshot.Round(2)

	assert.Equal(t, "146.81", rounded.Total.StringFixed(2))
	assert.Equal(t, "11.81", rounded.TaxAmount.StringFixed(2))
	assert.Equal(t, "150", rounded.Lines[0].ComputedSubtotal.String())
	assert.Equal(t, "15", rounded.AppliedDiscounts[0].Amount.String())
	assert.Equal(t, "8.75", rounded.TaxRate.String())

	// Исходный снимок не меняется
	assert.Equal(t, "146.8125", snapshot.Total.String())
	assert.Equal(t, "150.004", snapshot.Lines[0].ComputedSubtotal.String())
}

func TestExchangeRate_IsActive(t *testing.T) {
	rate := &ExchangeRate{}
	assert.True(t, rate.IsActive())

	closed := time.Now()
	rate.EffectiveTo = &closed
	assert.False(t, rate.IsActive())

	assert.True(t, RateSourceAPI.Valid())
	assert.False(t, RateSource("guess").Valid())
}
