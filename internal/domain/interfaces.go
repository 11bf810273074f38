package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateRepository определяет хранилище курсов валют и их истории
type RateRepository interface {
	// GetActiveRate возвращает активный курс пары или ErrRateNotFound
	GetActiveRate(ctx context.Context, base, target string) (*ExchangeRate, error)
	GetActiveRates(ctx context.Context, base string) ([]*ExchangeRate, error)
	// SupersedeRate атомарно закрывает активный курс пары, вставляет новый
	// и добавляет запись в историю
	SupersedeRate(ctx context.Context, rate *ExchangeRate) (*ExchangeRateHistoryEntry, error)
	GetHistory(ctx context.Context, base, target string, limit int) ([]*ExchangeRateHistoryEntry, error)
}

// DiscountRepository определяет источник настроенных скидок
type DiscountRepository interface {
	// GetDiscounts возвращает скидки в порядке их создания
	GetDiscounts(ctx context.Context) ([]Discount, error)
}

// CurrencyRepository определяет источник настроенных валют
type CurrencyRepository interface {
	GetCurrencies(ctx context.Context) ([]CurrencyDefinition, error)
}

// RateProvider определяет внешний источник курсов валют
type RateProvider interface {
	FetchRates(ctx context.Context, base string, targets []string) (map[string]decimal.Decimal, error)
}
