package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// RateStore - операции хранилища курсов, нужные сервису
type RateStore interface {
	RateResolver
	HasRate(ctx context.Context, base, target string) (bool, error)
	Update(ctx context.Context, base, target string, rate decimal.Decimal, source domain.RateSource, isManualOverride bool) (*domain.ExchangeRateHistoryEntry, error)
	ActiveRate(ctx context.Context, base, target string) (*domain.ExchangeRate, error)
	AllActive(ctx context.Context, base string) ([]*domain.ExchangeRate, error)
	IsStale(ctx context.Context, base, target string, maxAge time.Duration) (bool, error)
	History(ctx context.Context, base, target string, limit int) ([]*domain.ExchangeRateHistoryEntry, error)
}

// RateQuote - курс пары вместе с признаками его надежности.
// HasRate == false означает, что Rate - подстановка 1.
type RateQuote struct {
	Base    string               `json:"base"`
	Target  string               `json:"target"`
	Rate    decimal.Decimal      `json:"rate"`
	HasRate bool                 `json:"has_rate"`
	Stale   bool                 `json:"stale"`
	Active  *domain.ExchangeRate `json:"active,omitempty"`
}

// RateService - курсы настроенных валют: просмотр, ручная установка, история
type RateService struct {
	store      RateStore
	currencies CurrencyCatalog
	maxAge     time.Duration
}

// NewRateService создает сервис курсов. maxAge - возраст, после которого курс устаревает.
func NewRateService(store RateStore, currencies CurrencyCatalog, maxAge time.Duration) *RateService {
	return &RateService{
		store:      store,
		currencies: currencies,
		maxAge:     maxAge,
	}
}

// Quote возвращает текущий курс пары и сведения о нем
func (s *RateService) Quote(ctx context.Context, base, target string) (*RateQuote, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	if err := s.validatePair(base, target); err != nil {
		return nil, err
	}

	quote := &RateQuote{
		Base:   base,
		Target: target,
		Rate:   s.store.CurrentRate(ctx, base, target),
	}

	if base == target {
		quote.HasRate = true
		return quote, nil
	}

	hasRate, err := s.store.HasRate(ctx, base, target)
	if err != nil {
		return nil, fmt.Errorf("rate service: failed to check rate %s: %w", domain.PairKey(base, target), err)
	}
	quote.HasRate = hasRate

	stale, err := s.store.IsStale(ctx, base, target, s.maxAge)
	if err != nil {
		return nil, fmt.Errorf("rate service: %w", err)
	}
	quote.Stale = stale

	active, err := s.store.ActiveRate(ctx, base, target)
	if err != nil && !errors.Is(err, domain.ErrRateNotFound) {
		return nil, fmt.Errorf("rate service: failed to get active rate %s: %w", domain.PairKey(base, target), err)
	}
	quote.Active = active

	return quote, nil
}

// SetManualRate устанавливает курс вручную. Такой курс не перезаписывается
// фоновым обновлением.
func (s *RateService) SetManualRate(ctx context.Context, base, target string, rate decimal.Decimal) (*domain.ExchangeRateHistoryEntry, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	if err := s.validatePair(base, target); err != nil {
		return nil, err
	}

	entry, err := s.store.Update(ctx, base, target, rate, domain.RateSourceManual, true)
	if err != nil {
		return nil, fmt.Errorf("rate service: %w", err)
	}
	return entry, nil
}

// ActiveRates возвращает активные курсы от валюты base
func (s *RateService) ActiveRates(ctx context.Context, base string) ([]*domain.ExchangeRate, error) {
	base = domain.NormalizeCode(base)
	if !s.currencies.IsValid(base) {
		return nil, fmt.Errorf("rate service: %w: %s", domain.ErrInvalidCurrency, base)
	}

	rates, err := s.store.AllActive(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("rate service: %w", err)
	}
	if rates == nil {
		rates = []*domain.ExchangeRate{}
	}
	return rates, nil
}

// History возвращает историю изменений курса пары
func (s *RateService) History(ctx context.Context, base, target string, limit int) ([]*domain.ExchangeRateHistoryEntry, error) {
	base, target = domain.NormalizeCode(base), domain.NormalizeCode(target)
	if err := s.validatePair(base, target); err != nil {
		return nil, err
	}

	entries, err := s.store.History(ctx, base, target, limit)
	if err != nil {
		return nil, fmt.Errorf("rate service: %w", err)
	}
	if entries == nil {
		entries = []*domain.ExchangeRateHistoryEntry{}
	}
	return entries, nil
}

func (s *RateService) validatePair(base, target string) error {
	for _, code := range []string{base, target} {
		if !s.currencies.IsValid(code) {
			return fmt.Errorf("rate service: %w: %q", domain.ErrInvalidCurrency, code)
		}
	}
	return nil
}
