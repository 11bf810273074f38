package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateService определяет работу с курсами валют
type RateService interface {
	Quote(ctx context.Context, base, target string) (*service.RateQuote, error)
	SetManualRate(ctx context.Context, base, target string, rate decimal.Decimal) (*domain.ExchangeRateHistoryEntry, error)
	ActiveRates(ctx context.Context, base string) ([]*domain.ExchangeRate, error)
	History(ctx context.Context, base, target string, limit int) ([]*domain.ExchangeRateHistoryEntry, error)
}

// RatesHandler обрабатывает запросы курсов
type RatesHandler struct {
	rateService RateService
	logger      *zap.Logger
}

// NewRatesHandler создает новый RatesHandler
func NewRatesHandler(rateService RateService, logger *zap.Logger) *RatesHandler {
	return &RatesHandler{
		rateService: rateService,
		logger:      logger,
	}
}

// GetRate возвращает курс пары {base}/{target}
func (h *RatesHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	quote, err := h.rateService.Quote(r.Context(), chi.URLParam(r, "base"), chi.URLParam(r, "target"))
	if err != nil {
		writeError(w, r, err, h.logger, "failed to get rate")
		return
	}

	writeJSON(w, http.StatusOK, quote, h.logger)
}

// GetHistory возвращает историю курса пары. Параметр limit необязателен.
func (h *RatesHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.rateService.History(r.Context(), chi.URLParam(r, "base"), chi.URLParam(r, "target"), limit)
	if err != nil {
		writeError(w, r, err, h.logger, "failed to get rate history")
		return
	}

	if len(entries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, entries, h.logger)
}

// ListRates возвращает активные курсы от валюты {code}
func (h *RatesHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rateService.ActiveRates(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err, h.logger, "failed to list rates")
		return
	}

	writeJSON(w, http.StatusOK, rates, h.logger)
}

type setRateRequest struct {
	Base   string           `json:"base"`
	Target string           `json:"target"`
	Rate   *decimal.Decimal `json:"rate"`
}

// SetRate устанавливает курс вручную
func (h *RatesHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Rate == nil {
		http.Error(w, "rate is required", http.StatusBadRequest)
		return
	}

	entry, err := h.rateService.SetManualRate(r.Context(), req.Base, req.Target, *req.Rate)
	if err != nil {
		writeError(w, r, err, h.logger, "failed to set rate")
		return
	}

	h.logger.Info("manual exchange rate set",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("pair", domain.PairKey(entry.BaseCurrency, entry.TargetCurrency)),
		zap.String("rate", entry.Rate.String()),
	)
	writeJSON(w, http.StatusCreated, entry, h.logger)
}
