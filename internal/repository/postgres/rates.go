package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// RateRepository реализует domain.RateRepository
type RateRepository struct {
	db DBTX
}

var _ domain.RateRepository = (*RateRepository)(nil)

// NewRateRepository создает новый RateRepository
func NewRateRepository(db DBTX) *RateRepository {
	return &RateRepository{db: db}
}

const selectRateColumns = `SELECT id, base_currency, target_currency, rate::text, source,
		is_manual_override, effective_from, effective_to
	 FROM exchange_rates`

// GetActiveRate возвращает активный курс пары или domain.ErrRateNotFound
func (r *RateRepository) GetActiveRate(ctx context.Context, base, target string) (*domain.ExchangeRate, error) {
	row := r.db.QueryRow(ctx,
		selectRateColumns+`
	 WHERE base_currency = $1 AND target_currency = $2 AND effective_to IS NULL`,
		base, target,
	)

	rate, err := scanRate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateNotFound
		}
		return nil, fmt.Errorf("repository: failed to get active rate %s: %w", domain.PairKey(base, target), err)
	}

	return rate, nil
}

// GetActiveRates возвращает активные курсы от валюты base
func (r *RateRepository) GetActiveRates(ctx context.Context, base string) ([]*domain.ExchangeRate, error) {
	rows, err := r.db.Query(ctx,
		selectRateColumns+`
	 WHERE base_currency = $1 AND effective_to IS NULL
	 ORDER BY target_currency`,
		base,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get active rates for %s: %w", base, err)
	}
	defer rows.Close()

	var rates []*domain.ExchangeRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan rate: %w", err)
		}
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rates: %w", err)
	}

	return rates, nil
}

// SupersedeRate закрывает активный курс пары, вставляет новый и пишет историю
// в одной транзакции. Транзакции по одной паре сериализуются advisory lock,
// частичный уникальный индекс защищает от обхода блокировки.
func (r *RateRepository) SupersedeRate(ctx context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRateHistoryEntry, error) {
	pair := domain.PairKey(rate.BaseCurrency, rate.TargetCurrency)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction for %s: %w", pair, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback после Commit безопасен

	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, pair)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to acquire lock for %s: %w", pair, err)
	}

	var (
		previousID   uuid.UUID
		previousRate string
		previous     *domain.ExchangeRate
	)
	err = tx.QueryRow(ctx,
		`SELECT id, rate::text FROM exchange_rates
		 WHERE base_currency = $1 AND target_currency = $2 AND effective_to IS NULL
		 FOR UPDATE`,
		rate.BaseCurrency, rate.TargetCurrency,
	).Scan(&previousID, &previousRate)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("repository: failed to get active rate %s: %w", pair, err)
	default:
		value, err := decimal.NewFromString(previousRate)
		if err != nil {
			return nil, fmt.Errorf("repository: %w: rate %q", ErrMalformedRow, previousRate)
		}
		previous = &domain.ExchangeRate{ID: previousID, Rate: value}

		_, err = tx.Exec(ctx,
			`UPDATE exchange_rates SET effective_to = $1 WHERE id = $2`,
			rate.EffectiveFrom, previousID,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to close rate %s: %w", pair, err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO exchange_rates (id, base_currency, target_currency, rate, source, is_manual_override, effective_from)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rate.ID, rate.BaseCurrency, rate.TargetCurrency, rate.Rate.String(),
		string(rate.Source), rate.IsManualOverride, rate.EffectiveFrom,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("repository: %s: %w", pair, domain.ErrConcurrentUpdate)
		}
		return nil, fmt.Errorf("repository: failed to insert rate %s: %w", pair, err)
	}

	entry := domain.NewHistoryEntry(rate, previous, rate.EffectiveFrom)
	_, err = tx.Exec(ctx,
		`INSERT INTO exchange_rate_history (id, base_currency, target_currency, rate, previous_rate,
			change_percentage, source, is_manual_override, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.BaseCurrency, entry.TargetCurrency, entry.Rate.String(),
		decimalText(entry.PreviousRate), decimalText(entry.ChangePercentage),
		string(entry.Source), entry.IsManualOverride, entry.RecordedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert history for %s: %w", pair, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit rate update %s: %w", pair, err)
	}

	return entry, nil
}

// GetHistory возвращает историю пары от новых записей к старым
func (r *RateRepository) GetHistory(ctx context.Context, base, target string, limit int) ([]*domain.ExchangeRateHistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, base_currency, target_currency, rate::text, previous_rate::text,
			change_percentage::text, source, is_manual_override, recorded_at
		 FROM exchange_rate_history
		 WHERE base_currency = $1 AND target_currency = $2
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT $3`,
		base, target, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get history for %s: %w", domain.PairKey(base, target), err)
	}
	defer rows.Close()

	var entries []*domain.ExchangeRateHistoryEntry
	for rows.Next() {
		var (
			entry            domain.ExchangeRateHistoryEntry
			rate, source     string
			previous, change *string
		)
		err := rows.Scan(&entry.ID, &entry.BaseCurrency, &entry.TargetCurrency, &rate, &previous,
			&change, &source, &entry.IsManualOverride, &entry.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan history entry: %w", err)
		}

		if entry.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("repository: %w: rate %q", ErrMalformedRow, rate)
		}
		if entry.PreviousRate, err = parseDecimalText(previous); err != nil {
			return nil, err
		}
		if entry.ChangePercentage, err = parseDecimalText(change); err != nil {
			return nil, err
		}
		entry.Source = domain.RateSource(source)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating history: %w", err)
	}

	return entries, nil
}

func scanRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var (
		rate        domain.ExchangeRate
		value       string
		source      string
		effectiveTo *time.Time
	)
	err := row.Scan(&rate.ID, &rate.BaseCurrency, &rate.TargetCurrency, &value, &source,
		&rate.IsManualOverride, &rate.EffectiveFrom, &effectiveTo)
	if err != nil {
		return nil, err
	}

	if rate.Rate, err = decimal.NewFromString(value); err != nil {
		return nil, fmt.Errorf("%w: rate %q", ErrMalformedRow, value)
	}
	rate.Source = domain.RateSource(source)
	rate.EffectiveTo = effectiveTo
	return &rate, nil
}

// decimalText готовит необязательное число для NUMERIC параметра
func decimalText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimalText(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("repository: %w: number %q", ErrMalformedRow, *s)
	}
	return &d, nil
}
