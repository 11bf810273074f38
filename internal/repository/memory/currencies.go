package memory

import (
	"context"
	"sync"

	"github.com/avc/pos-pricing/internal/domain"
)

// CurrencyRepository хранит определения валют в памяти
type CurrencyRepository struct {
	mu         sync.RWMutex
	currencies []domain.CurrencyDefinition
}

var _ domain.CurrencyRepository = (*CurrencyRepository)(nil)

// NewCurrencyRepository создает репозиторий валют
func NewCurrencyRepository(currencies []domain.CurrencyDefinition) *CurrencyRepository {
	return &CurrencyRepository{currencies: append([]domain.CurrencyDefinition(nil), currencies...)}
}

// GetCurrencies возвращает копию набора валют
func (r *CurrencyRepository) GetCurrencies(_ context.Context) ([]domain.CurrencyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.CurrencyDefinition(nil), r.currencies...), nil
}
