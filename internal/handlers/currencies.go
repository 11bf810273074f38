package handlers

import (
	"net/http"

	"github.com/avc/pos-pricing/internal/domain"
	"go.uber.org/zap"
)

// CurrencyLister определяет список настроенных валют
type CurrencyLister interface {
	ListActive() ([]domain.CurrencyDefinition, error)
	Base() (domain.CurrencyDefinition, error)
}

// CurrenciesHandler обрабатывает запросы валют
type CurrenciesHandler struct {
	currencies CurrencyLister
	logger     *zap.Logger
}

// NewCurrenciesHandler создает новый CurrenciesHandler
func NewCurrenciesHandler(currencies CurrencyLister, logger *zap.Logger) *CurrenciesHandler {
	return &CurrenciesHandler{
		currencies: currencies,
		logger:     logger,
	}
}

type currenciesResponse struct {
	Base       string                      `json:"base"`
	Currencies []domain.CurrencyDefinition `json:"currencies"`
}

// List возвращает активные валюты и базовую валюту магазина
func (h *CurrenciesHandler) List(w http.ResponseWriter, r *http.Request) {
	base, err := h.currencies.Base()
	if err != nil {
		writeError(w, r, err, h.logger, "currency configuration is invalid")
		return
	}

	active, err := h.currencies.ListActive()
	if err != nil {
		writeError(w, r, err, h.logger, "failed to list currencies")
		return
	}

	writeJSON(w, http.StatusOK, currenciesResponse{Base: base.Code, Currencies: active}, h.logger)
}
