package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки конфигурации валют
var (
	ErrConfiguration    = errors.New("currency configuration error")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Ошибки курсов валют
var (
	ErrRateUnavailable   = errors.New("exchange rate unavailable")
	ErrInvalidRate       = errors.New("exchange rate must be positive")
	ErrIdentityRate      = errors.New("identity exchange rate is never stored")
	ErrInvalidCurrency   = errors.New("invalid currency code")
	ErrConcurrentUpdate  = errors.New("concurrent exchange rate update")
	ErrRateNotFound      = errors.New("exchange rate not found")
	ErrInvalidRateSource = errors.New("invalid exchange rate source")
)

// Ошибки корзины
var (
	ErrInvalidCart = errors.New("invalid cart")
)

// InvalidCartError описывает структурную ошибку корзины.
// Расчет прерывается, ошибка возвращается вызывающему.
type InvalidCartError struct {
	Line   int // Индекс строки, -1 если ошибка относится ко всей корзине
	Reason string
}

func (e *InvalidCartError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("invalid cart: %s", e.Reason)
	}
	return fmt.Sprintf("invalid cart: line %d: %s", e.Line, e.Reason)
}

// Is позволяет сравнивать ошибку с ErrInvalidCart через errors.Is
func (e *InvalidCartError) Is(target error) bool {
	return target == ErrInvalidCart
}

// NewInvalidCartError создает ошибку для всей корзины
func NewInvalidCartError(format string, args ...any) *InvalidCartError {
	return &InvalidCartError{Line: -1, Reason: fmt.Sprintf(format, args...)}
}

// NewInvalidLineError создает ошибку для конкретной строки корзины
func NewInvalidLineError(line int, format string, args ...any) *InvalidCartError {
	return &InvalidCartError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// ConditionEvaluationError описывает некорректное условие скидки.
// Скидка с таким условием пропускается, остальные продолжают вычисляться.
type ConditionEvaluationError struct {
	Condition ConditionType
	Operator  ConditionOperator
	Reason    string
}

func (e *ConditionEvaluationError) Error() string {
	var b strings.Builder
	b.WriteString("condition evaluation: ")
	if e.Condition != "" {
		b.WriteString(string(e.Condition))
	} else {
		b.WriteString("<empty type>")
	}
	if e.Operator != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Operator))
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}
