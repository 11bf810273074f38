package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rateColumns = []string{
	"id", "base_currency", "target_currency", "rate", "source",
	"is_manual_override", "effective_from", "effective_to",
}

func newRate(base, target, value string, at time.Time) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ID:             uuid.New(),
		BaseCurrency:   base,
		TargetCurrency: target,
		Rate:           decimal.RequireFromString(value),
		Source:         domain.RateSourceAPI,
		EffectiveFrom:  at,
	}
}

func TestRateRepository_GetActiveRate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepository(mock)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		rows := pgxmock.NewRows(rateColumns).
			AddRow(id, "USD", "EUR", "0.920000000000", "manual", true, now, (*time.Time)(nil))

		mock.ExpectQuery(`SELECT id, base_currency, target_currency, rate`).
			WithArgs("USD", "EUR").
			WillReturnRows(rows)

		rate, err := repo.GetActiveRate(ctx, "USD", "EUR")
		require.NoError(t, err)
		assert.Equal(t, id, rate.ID)
		assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.92")))
		assert.Equal(t, domain.RateSourceManual, rate.Source)
		assert.True(t, rate.IsManualOverride)
		assert.True(t, rate.IsActive())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, base_currency, target_currency, rate`).
			WithArgs("USD", "JPY").
			WillReturnRows(pgxmock.NewRows(rateColumns))

		rate, err := repo.GetActiveRate(ctx, "USD", "JPY")
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
		assert.Nil(t, rate)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed rate", func(t *testing.T) {
		rows := pgxmock.NewRows(rateColumns).
			AddRow(uuid.New(), "USD", "EUR", "abc", "api", false, now, (*time.Time)(nil))

		mock.ExpectQuery(`SELECT id, base_currency, target_currency, rate`).
			WithArgs("USD", "EUR").
			WillReturnRows(rows)

		_, err := repo.GetActiveRate(ctx, "USD", "EUR")
		assert.ErrorIs(t, err, ErrMalformedRow)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, base_currency, target_currency, rate`).
			WithArgs("USD", "EUR").
			WillReturnError(errors.New("database error"))

		_, err := repo.GetActiveRate(ctx, "USD", "EUR")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrRateNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateRepository_GetActiveRates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepository(mock)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows(rateColumns).
			AddRow(uuid.New(), "USD", "EUR", "0.92", "api", false, now, (*time.Time)(nil)).
			AddRow(uuid.New(), "USD", "LKR", "325", "manual", true, now, (*time.Time)(nil))

		mock.ExpectQuery(`WHERE base_currency = \$1 AND effective_to IS NULL ORDER BY target_currency`).
			WithArgs("USD").
			WillReturnRows(rows)

		rates, err := repo.GetActiveRates(ctx, "USD")
		require.NoError(t, err)
		require.Len(t, rates, 2)
		assert.Equal(t, "EUR", rates[0].TargetCurrency)
		assert.Equal(t, "LKR", rates[1].TargetCurrency)
		assert.True(t, rates[1].IsManualOverride)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`FROM exchange_rates`).
			WithArgs("USD").
			WillReturnError(errors.New("database error"))

		rates, err := repo.GetActiveRates(ctx, "USD")
		assert.Error(t, err)
		assert.Nil(t, rates)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateRepository_SupersedeRate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepository(mock)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("Success - first rate for pair", func(t *testing.T) {
		rate := newRate("USD", "EUR", "0.92", now)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs("USD/EUR").
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("USD", "EUR").
			WillReturnRows(pgxmock.NewRows([]string{"id", "rate"}))
		mock.ExpectExec(`INSERT INTO exchange_rates`).
			WithArgs(rate.ID, "USD", "EUR", "0.92", "api", false, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO exchange_rate_history`).
			WithArgs(pgxmock.AnyArg(), "USD", "EUR", "0.92", pgxmock.AnyArg(), pgxmock.AnyArg(), "api", false, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		entry, err := repo.SupersedeRate(ctx, rate)
		require.NoError(t, err)
		assert.Nil(t, entry.PreviousRate)
		assert.Nil(t, entry.ChangePercentage)
		assert.Equal(t, now, entry.RecordedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - closes previous rate", func(t *testing.T) {
		previousID := uuid.New()
		rate := newRate("USD", "LKR", "330", now)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs("USD/LKR").
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("USD", "LKR").
			WillReturnRows(pgxmock.NewRows([]string{"id", "rate"}).AddRow(previousID, "325.000000000000"))
		mock.ExpectExec(`UPDATE exchange_rates SET effective_to`).
			WithArgs(now, previousID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`INSERT INTO exchange_rates`).
			WithArgs(rate.ID, "USD", "LKR", "330", "api", false, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO exchange_rate_history`).
			WithArgs(pgxmock.AnyArg(), "USD", "LKR", "330", pgxmock.AnyArg(), pgxmock.AnyArg(), "api", false, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		entry, err := repo.SupersedeRate(ctx, rate)
		require.NoError(t, err)
		require.NotNil(t, entry.PreviousRate)
		assert.True(t, entry.PreviousRate.Equal(decimal.NewFromInt(325)))
		require.NotNil(t, entry.ChangePercentage)
		assert.Equal(t, "1.538", entry.ChangePercentage.StringFixed(3))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Concurrent insert", func(t *testing.T) {
		rate := newRate("USD", "EUR", "0.93", now)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs("USD/EUR").
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("USD", "EUR").
			WillReturnRows(pgxmock.NewRows([]string{"id", "rate"}))
		mock.ExpectExec(`INSERT INTO exchange_rates`).
			WithArgs(rate.ID, "USD", "EUR", "0.93", "api", false, now).
			WillReturnError(&pgconn.PgError{Code: uniqueViolation})
		mock.ExpectRollback()

		entry, err := repo.SupersedeRate(ctx, rate)
		assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
		assert.Nil(t, entry)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin transaction error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("begin error"))

		_, err := repo.SupersedeRate(ctx, newRate("USD", "EUR", "0.93", now))
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lock error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs("USD/EUR").
			WillReturnError(errors.New("lock error"))
		mock.ExpectRollback()

		_, err := repo.SupersedeRate(ctx, newRate("USD", "EUR", "0.93", now))
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("History insert error", func(t *testing.T) {
		rate := newRate("USD", "EUR", "0.93", now)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs("USD/EUR").
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("USD", "EUR").
			WillReturnRows(pgxmock.NewRows([]string{"id", "rate"}))
		mock.ExpectExec(`INSERT INTO exchange_rates`).
			WithArgs(rate.ID, "USD", "EUR", "0.93", "api", false, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO exchange_rate_history`).
			WithArgs(pgxmock.AnyArg(), "USD", "EUR", "0.93", pgxmock.AnyArg(), pgxmock.AnyArg(), "api", false, now).
			WillReturnError(errors.New("insert error"))
		mock.ExpectRollback()

		_, err := repo.SupersedeRate(ctx, rate)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRateRepository_GetHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateRepository(mock)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "base_currency", "target_currency", "rate", "previous_rate",
		"change_percentage", "source", "is_manual_override", "recorded_at",
	}

	t.Run("Success", func(t *testing.T) {
		previous := "325"
		change := "1.538461538461"
		rows := pgxmock.NewRows(columns).
			AddRow(uuid.New(), "USD", "LKR", "330", &previous, &change, "manual", true, now).
			AddRow(uuid.New(), "USD", "LKR", "325", (*string)(nil), (*string)(nil), "api", false, now.Add(-time.Hour))

		mock.ExpectQuery(`FROM exchange_rate_history`).
			WithArgs("USD", "LKR", 10).
			WillReturnRows(rows)

		entries, err := repo.GetHistory(ctx, "USD", "LKR", 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.NotNil(t, entries[0].PreviousRate)
		assert.True(t, entries[0].PreviousRate.Equal(decimal.NewFromInt(325)))
		assert.Equal(t, domain.RateSourceManual, entries[0].Source)
		assert.Nil(t, entries[1].PreviousRate)
		assert.Nil(t, entries[1].ChangePercentage)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`FROM exchange_rate_history`).
			WithArgs("USD", "LKR", 10).
			WillReturnError(errors.New("database error"))

		entries, err := repo.GetHistory(ctx, "USD", "LKR", 10)
		assert.Error(t, err)
		assert.Nil(t, entries)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
