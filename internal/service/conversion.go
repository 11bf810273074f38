package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// RateResolver - источник текущих курсов. Не возвращает ошибок:
// при отсутствии курса подставляется 1.
type RateResolver interface {
	CurrentRate(ctx context.Context, base, target string) decimal.Decimal
}

// CurrencyCatalog - настроенные валюты
type CurrencyCatalog interface {
	ListActive() ([]domain.CurrencyDefinition, error)
	Base() (domain.CurrencyDefinition, error)
	ByCode(code string) (domain.CurrencyDefinition, bool)
	IsValid(code string) bool
	Format(amount decimal.Decimal, code string) string
}

// ConversionService пересчитывает суммы между валютами и форматирует их.
// Коды валют здесь не проверяются: для неизвестной валюты используется
// курс, который вернет хранилище (в худшем случае 1).
type ConversionService struct {
	rates      RateResolver
	currencies CurrencyCatalog
	now        func() time.Time
}

// NewConversionService создает сервис конвертации
func NewConversionService(rates RateResolver, currencies CurrencyCatalog) *ConversionService {
	return &ConversionService{
		rates:      rates,
		currencies: currencies,
		now:        time.Now,
	}
}

// Convert пересчитывает amount из from в to по текущему курсу
func (s *ConversionService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) domain.Conversion {
	from, to = domain.NormalizeCode(from), domain.NormalizeCode(to)
	rate := s.rates.CurrentRate(ctx, from, to)

	return domain.Conversion{
		OriginalAmount:  amount,
		ConvertedAmount: amount.Mul(rate),
		FromCurrency:    from,
		ToCurrency:      to,
		ExchangeRate:    rate,
		Timestamp:       s.now().UTC(),
	}
}

// BatchConvert пересчитывает каждый элемент независимо, порядок сохраняется
func (s *ConversionService) BatchConvert(ctx context.Context, items []domain.ConversionRequest) []domain.Conversion {
	result := make([]domain.Conversion, len(items))
	for i, item := range items {
		result[i] = s.Convert(ctx, item.Amount, item.FromCurrency, item.ToCurrency)
	}
	return result
}

// ConvertFromBase пересчитывает сумму из базовой валюты магазина
func (s *ConversionService) ConvertFromBase(ctx context.Context, amount decimal.Decimal, to string) (domain.Conversion, error) {
	base, err := s.currencies.Base()
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("conversion service: %w", err)
	}
	return s.Convert(ctx, amount, base.Code, to), nil
}

// Format форматирует сумму с символом валюты
func (s *ConversionService) Format(amount decimal.Decimal, code string) string {
	return s.currencies.Format(amount, code)
}

// FormatConversion форматирует результат пересчета в целевой валюте
func (s *ConversionService) FormatConversion(c domain.Conversion) string {
	return s.currencies.Format(c.ConvertedAmount, c.ToCurrency)
}
