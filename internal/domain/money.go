package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money - сумма с явно указанной валютой.
// Арифметика между разными валютами запрещена, только через конвертацию.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney создает сумму в указанной валюте
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: NormalizeCode(currency)}
}

// ZeroMoney возвращает нулевую сумму в валюте
func ZeroMoney(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

// Add складывает суммы одной валюты
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub вычитает суммы одной валюты
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// IsNegative сообщает, отрицательна ли сумма
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) String() string {
	return m.Currency + " " + m.Amount.String()
}

// NormalizeCode приводит код валюты к каноническому виду
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
