// Package exchange хранит курсы валют: поиск активного курса с обратным
// пересчетом, кеш с TTL, вытеснение курсов и журнал изменений.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

var one = decimal.NewFromInt(1)

// Store - хранилище курсов валют поверх репозитория и кеша
type Store struct {
	repo    domain.RateRepository
	cache   Cache
	locks   *pairLocker
	fills   *fillGuard
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// StoreOption настраивает Store
type StoreOption func(*Store)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithMetrics задает метрики хранилища
func WithMetrics(m *metrics.Metrics) StoreOption {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore создает хранилище курсов
func NewStore(repo domain.RateRepository, cache Cache, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		repo:   repo,
		cache:  cache,
		locks:  newPairLocker(),
		fills:  newFillGuard(),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewMemoryCache(DefaultCacheTTL, s.now)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewUnregistered()
	}
	return s
}

// CurrentRate возвращает курс base -> target.
// Если курса нет ни в прямом, ни в обратном направлении, возвращается 1:
// расчет на кассе не должен останавливаться из-за отсутствия курса.
// Отличить настоящий паритет от подстановки можно через HasRate.
func (s *Store) CurrentRate(ctx context.Context, base, target string) decimal.Decimal {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	if base == target {
		return one
	}

	rate, err := s.LookupRate(ctx, base, target)
	if err != nil {
		if !errors.Is(err, domain.ErrRateUnavailable) {
			s.logger.Warn("exchange rate lookup failed, using fallback",
				zap.String("pair", domain.PairKey(base, target)),
				zap.Error(err),
			)
		}
		s.metrics.RateFallbacks.WithLabelValues(base, target).Inc()
		return one
	}

	return rate
}

// LookupRate возвращает курс base -> target или ErrRateUnavailable.
// Сначала ищется прямой активный курс, затем обратный (берется обратная величина).
func (s *Store) LookupRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	if base == target {
		return one, nil
	}

	if rate, ok := s.cache.Get(ctx, base, target); ok {
		s.metrics.RateCacheHits.Inc()
		return rate, nil
	}
	s.metrics.RateCacheMisses.Inc()

	gen := s.fills.current(base, target)
	rate, err := s.resolve(ctx, base, target)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// Курс, прочитанный до параллельного Update, в кеш не попадает
	if !s.fills.fill(base, target, gen, func() { s.cache.Set(ctx, base, target, rate) }) {
		s.logger.Debug("exchange rate changed during lookup, cache fill skipped",
			zap.String("pair", domain.PairKey(base, target)),
		)
	}
	return rate, nil
}

func (s *Store) resolve(ctx context.Context, base, target string) (decimal.Decimal, error) {
	direct, err := s.repo.GetActiveRate(ctx, base, target)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return decimal.Decimal{}, fmt.Errorf("exchange store: failed to get rate %s: %w", domain.PairKey(base, target), err)
	}

	reverse, err := s.repo.GetActiveRate(ctx, target, base)
	if err == nil {
		return one.Div(reverse.Rate), nil
	}
	if !errors.Is(err, domain.ErrRateNotFound) {
		return decimal.Decimal{}, fmt.Errorf("exchange store: failed to get rate %s: %w", domain.PairKey(target, base), err)
	}

	return decimal.Decimal{}, fmt.Errorf("%w: %s", domain.ErrRateUnavailable, domain.PairKey(base, target))
}

// HasRate сообщает, есть ли для пары настоящий курс (прямой или обратный)
func (s *Store) HasRate(ctx context.Context, base, target string) (bool, error) {
	_, err := s.LookupRate(ctx, base, target)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrRateUnavailable) {
		return false, nil
	}
	return false, err
}

// Update устанавливает новый активный курс пары.
// Предыдущий курс закрывается, новый вставляется, в журнал добавляется запись;
// последовательность выполняется под блокировкой пары. Кеш обеих сторон пары
// сбрасывается до возврата из метода; ошибка сброса логируется и учитывается
// в метриках, записанный курс при этом возвращается.
func (s *Store) Update(ctx context.Context, base, target string, rate decimal.Decimal, source domain.RateSource, isManualOverride bool) (*domain.ExchangeRateHistoryEntry, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)

	if err := ValidateCode(base); err != nil {
		return nil, err
	}
	if err := ValidateCode(target); err != nil {
		return nil, err
	}
	if base == target {
		return nil, fmt.Errorf("%w: %s", domain.ErrIdentityRate, domain.PairKey(base, target))
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", domain.ErrInvalidRate, rate.String())
	}
	if !source.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRateSource, source)
	}

	pair := domain.PairKey(base, target)
	unlock := s.locks.Lock(pair)
	defer unlock()

	record := &domain.ExchangeRate{
		ID:               uuid.New(),
		BaseCurrency:     base,
		TargetCurrency:   target,
		Rate:             rate,
		Source:           source,
		IsManualOverride: isManualOverride,
		EffectiveFrom:    s.now().UTC(),
	}

	entry, err := s.repo.SupersedeRate(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("exchange store: failed to update rate %s: %w", pair, err)
	}

	s.fills.bump(base, target)

	// Обратный курс тоже мог быть закеширован как обратная величина.
	// Курс уже записан, поэтому ошибка сброса кеша не возвращается вызывающему.
	if err := errors.Join(
		s.cache.Invalidate(ctx, base, target),
		s.cache.Invalidate(ctx, target, base),
	); err != nil {
		s.metrics.RateCacheInvalidationErrors.Inc()
		s.logger.Warn("exchange rate stored but cache invalidation failed",
			zap.String("pair", pair),
			zap.Error(err),
		)
	}

	s.metrics.RateUpdates.WithLabelValues(string(source)).Inc()
	s.logger.Info("exchange rate updated",
		zap.String("pair", pair),
		zap.String("rate", rate.String()),
		zap.String("source", string(source)),
		zap.Bool("manual_override", isManualOverride),
	)

	return entry, nil
}

// ActiveRate возвращает активную запись прямой пары или ErrRateNotFound
func (s *Store) ActiveRate(ctx context.Context, base, target string) (*domain.ExchangeRate, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	return s.repo.GetActiveRate(ctx, base, target)
}

// AllActive возвращает активные курсы от базовой валюты
func (s *Store) AllActive(ctx context.Context, base string) ([]*domain.ExchangeRate, error) {
	rates, err := s.repo.GetActiveRates(ctx, domain.NormalizeCode(base))
	if err != nil {
		return nil, fmt.Errorf("exchange store: failed to list rates for %s: %w", base, err)
	}
	return rates, nil
}

// IsStale сообщает, устарел ли курс пары.
// Курс считается устаревшим, если его нет или он действует дольше maxAge.
// Без прямой записи проверяется обратная: по ней CurrentRate отдает обратную величину.
func (s *Store) IsStale(ctx context.Context, base, target string, maxAge time.Duration) (bool, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	if base == target {
		return false, nil
	}

	record, err := s.repo.GetActiveRate(ctx, base, target)
	if errors.Is(err, domain.ErrRateNotFound) {
		record, err = s.repo.GetActiveRate(ctx, target, base)
	}
	if errors.Is(err, domain.ErrRateNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("exchange store: failed to check staleness of %s: %w", domain.PairKey(base, target), err)
	}

	return s.now().Sub(record.EffectiveFrom) > maxAge, nil
}

// History возвращает историю изменений курса пары от новых к старым
func (s *Store) History(ctx context.Context, base, target string, limit int) ([]*domain.ExchangeRateHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	entries, err := s.repo.GetHistory(ctx, base, target, limit)
	if err != nil {
		return nil, fmt.Errorf("exchange store: failed to get history for %s: %w", domain.PairKey(base, target), err)
	}
	return entries, nil
}

// ResetCache очищает кеш курсов
func (s *Store) ResetCache(ctx context.Context) error {
	return s.cache.Reset(ctx)
}

// ValidateCode проверяет код валюты: три латинские буквы
func ValidateCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if r > unicode.MaxASCII || !unicode.IsUpper(r) {
			return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, code)
		}
	}
	return nil
}
