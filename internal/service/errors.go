package service

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки ввода
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Ошибки поставщиков курсов
var (
	ErrUnknownProvider       = errors.New("unknown rate provider")
	ErrProviderMisconfigured = errors.New("rate provider misconfigured")
)

// RateLimitError представляет ошибку превышения лимита запросов
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// NewRateLimitError создает новую ошибку rate limit
func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter}
}
