package service

import (
	"context"
	"testing"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/exchange"
	"github.com/avc/pos-pricing/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRateService() (*RateService, *exchange.Store) {
	store := exchange.NewStore(memory.NewRateRepository(nil), nil, zap.NewNop())
	return NewRateService(store, testRegistry(), time.Hour), store
}

func TestRateService_Quote(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing rate", func(t *testing.T) {
		svc, _ := newTestRateService()

		quote, err := svc.Quote(ctx, "usd", "eur")
		require.NoError(t, err)
		assert.Equal(t, "USD", quote.Base)
		assert.False(t, quote.HasRate)
		assert.True(t, quote.Stale)
		assert.Nil(t, quote.Active)
		assert.True(t, quote.Rate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("Reverse rate", func(t *testing.T) {
		svc, store := newTestRateService()
		_, err := store.Update(ctx, "EUR", "USD", dec("1.25"), domain.RateSourceAPI, false)
		require.NoError(t, err)

		quote, err := svc.Quote(ctx, "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, quote.HasRate)
		assert.False(t, quote.Stale)
		assert.Nil(t, quote.Active, "only direct records are reported as active")
		assert.True(t, quote.Rate.Equal(dec("0.8")))
	})

	t.Run("Identity", func(t *testing.T) {
		svc, _ := newTestRateService()

		quote, err := svc.Quote(ctx, "LKR", "LKR")
		require.NoError(t, err)
		assert.True(t, quote.HasRate)
		assert.False(t, quote.Stale)
	})

	t.Run("Inactive currency", func(t *testing.T) {
		svc, _ := newTestRateService()

		_, err := svc.Quote(ctx, "USD", "GBP")
		assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
	})
}

func TestRateService_SetManualRate(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestRateService()

	entry, err := svc.SetManualRate(ctx, "usd", "lkr", dec("325"))
	require.NoError(t, err)
	assert.Equal(t, domain.RateSourceManual, entry.Source)
	assert.True(t, entry.IsManualOverride)

	active, err := store.ActiveRate(ctx, "USD", "LKR")
	require.NoError(t, err)
	assert.True(t, active.IsManualOverride)

	_, err = svc.SetManualRate(ctx, "USD", "LKR", dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidRate)

	_, err = svc.SetManualRate(ctx, "USD", "XXX", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)

	history, err := svc.History(ctx, "USD", "LKR", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRateService_ActiveRates(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestRateService()

	rates, err := svc.ActiveRates(ctx, "USD")
	require.NoError(t, err)
	assert.NotNil(t, rates)
	assert.Empty(t, rates)

	_, err = store.Update(ctx, "USD", "EUR", dec("0.85"), domain.RateSourceAPI, false)
	require.NoError(t, err)

	rates, err = svc.ActiveRates(ctx, "usd")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "EUR", rates[0].TargetCurrency)

	_, err = svc.ActiveRates(ctx, "GBP")
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}
