package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avc/pos-pricing/internal/currency"
	"github.com/avc/pos-pricing/internal/domain"
	domainmocks "github.com/avc/pos-pricing/internal/domain/mocks"
	"github.com/avc/pos-pricing/internal/exchange"
	"github.com/avc/pos-pricing/internal/metrics"
	"github.com/avc/pos-pricing/internal/repository/memory"
	"github.com/avc/pos-pricing/internal/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testRegistry() *currency.Registry {
	return currency.NewRegistry([]domain.CurrencyDefinition{
		{Code: "USD", IsActive: true, IsBaseCurrency: true},
		{Code: "EUR", IsActive: true},
		{Code: "LKR", IsActive: true},
		{Code: "JPY", IsActive: false},
	})
}

type fixture struct {
	clock    *testClock
	store    *exchange.Store
	provider *domainmocks.RateProviderMock
	metrics  *metrics.Metrics
	logs     *observer.ObservedLogs
	pool     *Pool
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	clock := &testClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	store := exchange.NewStore(memory.NewRateRepository(nil), nil, zap.NewNop(), exchange.WithClock(clock.Now))
	provider := domainmocks.NewRateProviderMock(t)
	m := metrics.NewUnregistered()
	core, logs := observer.New(zapcore.DebugLevel)

	opts = append([]Option{WithMetrics(m), WithMaxAge(time.Hour)}, opts...)
	pool := NewPool(1, 10, store, testRegistry(), provider, zap.New(core), opts...)

	return &fixture{clock: clock, store: store, provider: provider, metrics: m, logs: logs, pool: pool}
}

func (f *fixture) refreshes(outcome string) float64 {
	return testutil.ToFloat64(f.metrics.RateRefreshes.WithLabelValues(outcome))
}

func TestPool_RefreshPair(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores fetched rate", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().FetchRates(mock.Anything, "USD", []string{"EUR"}).
			Return(map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92")}, nil).Once()

		f.pool.refreshPair(ctx, pair{base: "USD", target: "EUR"})

		rate, err := f.store.ActiveRate(ctx, "USD", "EUR")
		require.NoError(t, err)
		assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.92")))
		assert.Equal(t, domain.RateSourceAPI, rate.Source)
		assert.False(t, rate.IsManualOverride)
		assert.Equal(t, 1.0, f.refreshes("updated"))
	})

	t.Run("Direct manual override is kept", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Update(ctx, "USD", "LKR", decimal.NewFromInt(325), domain.RateSourceManual, true)
		require.NoError(t, err)

		f.pool.refreshPair(ctx, pair{base: "USD", target: "LKR"})

		rate, err := f.store.ActiveRate(ctx, "USD", "LKR")
		require.NoError(t, err)
		assert.True(t, rate.IsManualOverride)
		assert.Equal(t, 1.0, f.refreshes("manual"))
	})

	t.Run("Reverse manual override is kept", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.Update(ctx, "EUR", "USD", decimal.RequireFromString("1.08"), domain.RateSourceManual, true)
		require.NoError(t, err)

		f.pool.refreshPair(ctx, pair{base: "USD", target: "EUR"})

		_, err = f.store.ActiveRate(ctx, "USD", "EUR")
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
		assert.Equal(t, 1.0, f.refreshes("manual"))
	})

	t.Run("Rate limited", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().FetchRates(mock.Anything, "USD", []string{"EUR"}).
			Return(nil, service.NewRateLimitError(30*time.Second)).Once()

		f.pool.refreshPair(ctx, pair{base: "USD", target: "EUR"})

		_, err := f.store.ActiveRate(ctx, "USD", "EUR")
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
		assert.Equal(t, 1.0, f.refreshes("rate_limited"))

		entries := f.logs.FilterMessage("rate limit exceeded").All()
		require.Len(t, entries, 1)
		assert.Equal(t, 30*time.Second, entries[0].ContextMap()["retry_after"])
	})

	t.Run("Provider error", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().FetchRates(mock.Anything, "USD", []string{"EUR"}).
			Return(nil, errors.New("connection refused")).Once()

		f.pool.refreshPair(ctx, pair{base: "USD", target: "EUR"})

		assert.Equal(t, 1.0, f.refreshes("error"))
		assert.Equal(t, 1, f.logs.FilterMessage("failed to fetch rate").Len())
	})

	t.Run("Provider has no rate for pair", func(t *testing.T) {
		f := newFixture(t)
		f.provider.EXPECT().FetchRates(mock.Anything, "USD", []string{"EUR"}).
			Return(map[string]decimal.Decimal{}, nil).Once()

		f.pool.refreshPair(ctx, pair{base: "USD", target: "EUR"})

		_, err := f.store.ActiveRate(ctx, "USD", "EUR")
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
		assert.Equal(t, 1.0, f.refreshes("missing"))
	})
}

func TestPool_ScanStaleRates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.store.Update(ctx, "USD", "EUR", decimal.RequireFromString("0.92"), domain.RateSourceAPI, false)
	require.NoError(t, err)

	f.pool.scanStaleRates(ctx)

	// EUR свежий, LKR без курса, JPY неактивна
	select {
	case job := <-f.pool.queue:
		assert.Equal(t, pair{base: "USD", target: "LKR"}, job)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected pair in queue, got timeout")
	}
	assert.Empty(t, f.pool.queue)

	// Пара еще в работе и повторно не ставится
	f.pool.scanStaleRates(ctx)
	assert.Empty(t, f.pool.queue)

	f.pool.release(pair{base: "USD", target: "LKR"})
	f.clock.Advance(2 * time.Hour)
	f.pool.scanStaleRates(ctx)
	assert.Len(t, f.pool.queue, 2)
}

func TestPool_ScanStaleRates_QueueFull(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	store := exchange.NewStore(memory.NewRateRepository(nil), nil, zap.NewNop(), exchange.WithClock(clock.Now))
	core, logs := observer.New(zapcore.WarnLevel)

	pool := NewPool(1, 1, store, testRegistry(), domainmocks.NewRateProviderMock(t), zap.New(core))

	pool.scanStaleRates(ctx)

	assert.Len(t, pool.queue, 1)
	assert.Equal(t, 1, logs.FilterMessage("queue is full, skipping pair").Len())

	// Пропущенная пара освобождена и попадет в следующий проход
	pool.mu.Lock()
	assert.Len(t, pool.inFlight, 1)
	pool.mu.Unlock()
}

func TestPool_StartStop(t *testing.T) {
	f := newFixture(t, WithScanInterval(10*time.Millisecond))
	f.provider.EXPECT().FetchRates(mock.Anything, "USD", mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, targets []string) (map[string]decimal.Decimal, error) {
			rates := map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92"), "LKR": decimal.NewFromInt(325)}
			result := make(map[string]decimal.Decimal, len(targets))
			for _, target := range targets {
				result[target] = rates[target]
			}
			return result, nil
		}).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	f.pool.Start(ctx)

	require.Eventually(t, func() bool {
		eur, errEUR := f.store.ActiveRate(context.Background(), "USD", "EUR")
		lkr, errLKR := f.store.ActiveRate(context.Background(), "USD", "LKR")
		return errEUR == nil && errLKR == nil && eur != nil && lkr != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	f.pool.Stop()

	lkr, err := f.store.ActiveRate(context.Background(), "USD", "LKR")
	require.NoError(t, err)
	assert.True(t, lkr.Rate.Equal(decimal.NewFromInt(325)))
}
