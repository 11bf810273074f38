package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NewHistoryEntry создает запись истории для нового курса.
// Если предыдущий курс был, фиксируются он и процент изменения.
func NewHistoryEntry(rate *ExchangeRate, previous *ExchangeRate, recordedAt time.Time) *ExchangeRateHistoryEntry {
	entry := &ExchangeRateHistoryEntry{
		ID:               uuid.New(),
		BaseCurrency:     rate.BaseCurrency,
		TargetCurrency:   rate.TargetCurrency,
		Rate:             rate.Rate,
		Source:           rate.Source,
		IsManualOverride: rate.IsManualOverride,
		RecordedAt:       recordedAt,
	}

	if previous != nil && previous.Rate.IsPositive() {
		prev := previous.Rate
		change := ChangePercentage(prev, rate.Rate)
		entry.PreviousRate = &prev
		entry.ChangePercentage = &change
	}

	return entry
}

// ChangePercentage считает (current - previous) / previous * 100
func ChangePercentage(previous, current decimal.Decimal) decimal.Decimal {
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// PairKey возвращает ключ пары валют вида "USD/EUR"
func PairKey(base, target string) string {
	return base + "/" + target
}
