package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/avc/pos-pricing/internal/domain"
)

// DiscountRepository хранит скидки в памяти
type DiscountRepository struct {
	mu        sync.RWMutex
	discounts []domain.Discount
}

var _ domain.DiscountRepository = (*DiscountRepository)(nil)

// NewDiscountRepository создает репозиторий с начальным набором скидок
func NewDiscountRepository(discounts []domain.Discount) *DiscountRepository {
	r := &DiscountRepository{}
	r.Replace(discounts)
	return r
}

// Replace заменяет набор скидок
func (r *DiscountRepository) Replace(discounts []domain.Discount) {
	sorted := append([]domain.Discount(nil), discounts...)
	// Порядок объявления: по времени создания, при равенстве - порядок во входном списке
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	r.mu.Lock()
	r.discounts = sorted
	r.mu.Unlock()
}

// GetDiscounts возвращает копию набора скидок
func (r *DiscountRepository) GetDiscounts(_ context.Context) ([]domain.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Discount(nil), r.discounts...), nil
}
