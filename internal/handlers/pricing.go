package handlers

import (
	"context"
	"net/http"

	"github.com/avc/pos-pricing/internal/domain"
	"go.uber.org/zap"
)

// PricingService определяет расчет корзины
type PricingService interface {
	Price(ctx context.Context, cart domain.Cart) (*domain.PricedCartSnapshot, error)
}

// PricingHandler обрабатывает запросы расчета корзины
type PricingHandler struct {
	pricingService PricingService
	logger         *zap.Logger
}

// NewPricingHandler создает новый PricingHandler
func NewPricingHandler(pricingService PricingService, logger *zap.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// PriceCart рассчитывает корзину целиком и возвращает снимок с итогами
func (h *PricingHandler) PriceCart(w http.ResponseWriter, r *http.Request) {
	var cart domain.Cart
	if err := decodeJSON(w, r, &cart); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	snapshot, err := h.pricingService.Price(r.Context(), cart)
	if err != nil {
		writeError(w, r, err, h.logger, "failed to price cart")
		return
	}

	writeJSON(w, http.StatusOK, snapshot, h.logger)
}
