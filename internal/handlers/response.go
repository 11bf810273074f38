package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/service"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// statusFor сопоставляет ошибку сервиса с HTTP статусом.
// Ошибки, требующие внимания оператора, дают 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCart),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrIdentityRate),
		errors.Is(err, domain.ErrInvalidRateSource),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError пишет текст ошибки клиенту для 4xx и общий ответ для 5xx
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger, msg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg,
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "Internal Server Error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
