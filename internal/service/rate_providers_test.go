package service

import (
	"context"
	"testing"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateProvider(t *testing.T) {
	t.Run("Static", func(t *testing.T) {
		provider, err := NewRateProvider("static", ProviderConfig{
			Rates: map[string]map[string]decimal.Decimal{
				"usd": {"eur": dec("0.85"), "LKR": dec("330")},
			},
		})
		require.NoError(t, err)

		rates, err := provider.FetchRates(context.Background(), "USD", []string{"EUR", "JPY"})
		require.NoError(t, err)
		require.Len(t, rates, 1)
		assert.True(t, rates["EUR"].Equal(dec("0.85")))

		rates, err = provider.FetchRates(context.Background(), "EUR", []string{"USD"})
		require.NoError(t, err)
		assert.Empty(t, rates)
	})

	t.Run("HTTP", func(t *testing.T) {
		provider, err := NewRateProvider(" HTTP ", ProviderConfig{Address: "http://rates.local"})
		require.NoError(t, err)
		assert.IsType(t, &HTTPRateProvider{}, provider)
	})

	t.Run("HTTP without address", func(t *testing.T) {
		_, err := NewRateProvider(ProviderHTTP, ProviderConfig{})
		assert.ErrorIs(t, err, ErrProviderMisconfigured)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := NewRateProvider("carrier-pigeon", ProviderConfig{})
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})
}

type fixedProvider struct{}

func (fixedProvider) FetchRates(context.Context, string, []string) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{"EUR": decimal.NewFromInt(2)}, nil
}

func TestRegisterRateProvider(t *testing.T) {
	RegisterRateProvider("Fixed", func(ProviderConfig) (domain.RateProvider, error) {
		return fixedProvider{}, nil
	})

	assert.Contains(t, RateProviderKinds(), "fixed")

	provider, err := NewRateProvider("fixed", ProviderConfig{})
	require.NoError(t, err)

	rates, err := provider.FetchRates(context.Background(), "USD", nil)
	require.NoError(t, err)
	assert.True(t, rates["EUR"].Equal(decimal.NewFromInt(2)))
}
