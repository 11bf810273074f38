package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/pricing"
	"go.uber.org/zap"
)

// defaultPlaces - точность чека, если валюта корзины не настроена
const defaultPlaces = 2

// CartPricer рассчитывает корзину по набору скидок
type CartPricer interface {
	Price(cart domain.Cart, pctx pricing.PricingContext) (*domain.PricedCartSnapshot, error)
}

// PricingService загружает скидки и рассчитывает корзину.
// Результат округляется до точности валюты корзины.
type PricingService struct {
	discounts  domain.DiscountRepository
	engine     CartPricer
	currencies CurrencyCatalog
	logger     *zap.Logger
	now        func() time.Time
}

// NewPricingService создает сервис расчета корзины
func NewPricingService(discounts domain.DiscountRepository, engine CartPricer, currencies CurrencyCatalog, logger *zap.Logger) *PricingService {
	return &PricingService{
		discounts:  discounts,
		engine:     engine,
		currencies: currencies,
		logger:     logger,
		now:        time.Now,
	}
}

// Price рассчитывает корзину. Если скидки загрузить не удалось, корзина
// считается без скидок: касса не должна останавливаться.
func (s *PricingService) Price(ctx context.Context, cart domain.Cart) (*domain.PricedCartSnapshot, error) {
	if cart.Currency == "" {
		base, err := s.currencies.Base()
		if err != nil {
			return nil, fmt.Errorf("pricing service: %w", err)
		}
		cart.Currency = base.Code
	}

	discounts, err := s.discounts.GetDiscounts(ctx)
	if err != nil {
		s.logger.Error("Failed to load discounts, pricing without them",
			zap.String("cart_id", cart.ID),
			zap.Error(err),
		)
		discounts = nil
	}

	snapshot, err := s.engine.Price(cart, pricing.PricingContext{
		Discounts: discounts,
		At:        s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("pricing service: %w", err)
	}

	places := int32(defaultPlaces)
	if def, ok := s.currencies.ByCode(snapshot.Currency); ok {
		places = def.DecimalPlaces
	}

	return snapshot.Round(places), nil
}
