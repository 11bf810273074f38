package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/exchange"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBatchSize = 100

// ConversionService определяет пересчет сумм между валютами
type ConversionService interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) domain.Conversion
	BatchConvert(ctx context.Context, items []domain.ConversionRequest) []domain.Conversion
	FormatConversion(c domain.Conversion) string
}

// ConversionHandler обрабатывает запросы конвертации
type ConversionHandler struct {
	conversionService ConversionService
	logger            *zap.Logger
}

// NewConversionHandler создает новый ConversionHandler
func NewConversionHandler(conversionService ConversionService, logger *zap.Logger) *ConversionHandler {
	return &ConversionHandler{
		conversionService: conversionService,
		logger:            logger,
	}
}

type conversionRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	FromCurrency string           `json:"from_currency"`
	ToCurrency   string           `json:"to_currency"`
}

func (req conversionRequest) toDomain() (domain.ConversionRequest, error) {
	if req.Amount == nil {
		return domain.ConversionRequest{}, fmt.Errorf("amount is required")
	}
	from, to := domain.NormalizeCode(req.FromCurrency), domain.NormalizeCode(req.ToCurrency)
	if err := exchange.ValidateCode(from); err != nil {
		return domain.ConversionRequest{}, err
	}
	if err := exchange.ValidateCode(to); err != nil {
		return domain.ConversionRequest{}, err
	}
	return domain.ConversionRequest{Amount: *req.Amount, FromCurrency: from, ToCurrency: to}, nil
}

type conversionResponse struct {
	domain.Conversion
	Formatted string `json:"formatted"`
}

type batchConversionRequest struct {
	Items []conversionRequest `json:"items"`
}

// Convert пересчитывает одну сумму
func (h *ConversionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req conversionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	item, err := req.toDomain()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := h.conversionService.Convert(r.Context(), item.Amount, item.FromCurrency, item.ToCurrency)
	writeJSON(w, http.StatusOK, conversionResponse{
		Conversion: c,
		Formatted:  h.conversionService.FormatConversion(c),
	}, h.logger)
}

// BatchConvert пересчитывает несколько сумм, порядок ответа совпадает с запросом
func (h *ConversionHandler) BatchConvert(w http.ResponseWriter, r *http.Request) {
	var req batchConversionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if len(req.Items) == 0 || len(req.Items) > maxBatchSize {
		http.Error(w, fmt.Sprintf("items must contain 1..%d elements", maxBatchSize), http.StatusBadRequest)
		return
	}

	items := make([]domain.ConversionRequest, len(req.Items))
	for i, raw := range req.Items {
		item, err := raw.toDomain()
		if err != nil {
			http.Error(w, fmt.Sprintf("item %d: %v", i, err), http.StatusBadRequest)
			return
		}
		items[i] = item
	}

	conversions := h.conversionService.BatchConvert(r.Context(), items)
	response := make([]conversionResponse, len(conversions))
	for i, c := range conversions {
		response[i] = conversionResponse{
			Conversion: c,
			Formatted:  h.conversionService.FormatConversion(c),
		}
	}

	writeJSON(w, http.StatusOK, response, h.logger)
}
