// Package memory содержит хранилища в памяти процесса. Используются, когда
// сервис запущен без базы данных, а также в утилите командной строки и тестах.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/exchange"
)

// RateRepository хранит все версии курсов по парам и журнал изменений
type RateRepository struct {
	mu     sync.Mutex
	rates  map[string][]*domain.ExchangeRate
	ledger *exchange.Ledger
}

var _ domain.RateRepository = (*RateRepository)(nil)

// NewRateRepository создает репозиторий курсов. ledger == nil создает новый журнал.
func NewRateRepository(ledger *exchange.Ledger) *RateRepository {
	if ledger == nil {
		ledger = exchange.NewLedger()
	}
	return &RateRepository{
		rates:  make(map[string][]*domain.ExchangeRate),
		ledger: ledger,
	}
}

// GetActiveRate возвращает активный курс пары
func (r *RateRepository) GetActiveRate(_ context.Context, base, target string) (*domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if active := r.active(domain.PairKey(base, target)); active != nil {
		return copyRate(active), nil
	}
	return nil, domain.ErrRateNotFound
}

// GetActiveRates возвращает активные курсы от базовой валюты, отсортированные по целевой
func (r *RateRepository) GetActiveRates(_ context.Context, base string) ([]*domain.ExchangeRate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.ExchangeRate
	for key := range r.rates {
		active := r.active(key)
		if active != nil && active.BaseCurrency == base {
			result = append(result, copyRate(active))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TargetCurrency < result[j].TargetCurrency
	})

	return result, nil
}

// SupersedeRate закрывает активный курс пары, добавляет новый и пишет запись в журнал.
// Все три шага выполняются под одной блокировкой репозитория.
func (r *RateRepository) SupersedeRate(_ context.Context, rate *domain.ExchangeRate) (*domain.ExchangeRateHistoryEntry, error) {
	key := domain.PairKey(rate.BaseCurrency, rate.TargetCurrency)

	r.mu.Lock()
	defer r.mu.Unlock()

	var previous *domain.ExchangeRate
	if active := r.active(key); active != nil {
		previous = copyRate(active)
		closedAt := rate.EffectiveFrom
		active.EffectiveTo = &closedAt
	}

	inserted := copyRate(rate)
	inserted.EffectiveTo = nil
	r.rates[key] = append(r.rates[key], inserted)

	entry := domain.NewHistoryEntry(inserted, previous, rate.EffectiveFrom)
	r.ledger.Append(entry)

	return entry, nil
}

// GetHistory возвращает историю пары от новых записей к старым
func (r *RateRepository) GetHistory(_ context.Context, base, target string, limit int) ([]*domain.ExchangeRateHistoryEntry, error) {
	return r.ledger.Query(base, target, limit), nil
}

// Records возвращает все версии курса пары в порядке вставки
func (r *RateRepository) Records(base, target string) []*domain.ExchangeRate {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.rates[domain.PairKey(base, target)]
	result := make([]*domain.ExchangeRate, len(records))
	for i, record := range records {
		result[i] = copyRate(record)
	}
	return result
}

func (r *RateRepository) active(key string) *domain.ExchangeRate {
	for _, record := range r.rates[key] {
		if record.IsActive() {
			return record
		}
	}
	return nil
}

func copyRate(rate *domain.ExchangeRate) *domain.ExchangeRate {
	c := *rate
	if rate.EffectiveTo != nil {
		to := *rate.EffectiveTo
		c.EffectiveTo = &to
	}
	return &c
}
