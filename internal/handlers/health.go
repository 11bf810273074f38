package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const checkTimeout = 2 * time.Second

// Check - проверка доступности внешней зависимости
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	checks []Check
	logger *zap.Logger
}

// NewHealthHandler создает новый HealthHandler.
// Без проверок (хранилища в памяти) сервис всегда здоров.
func NewHealthHandler(logger *zap.Logger, checks ...Check) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (h *HealthHandler) run(ctx context.Context) HealthResponse {
	response := HealthResponse{Status: "ok"}
	if len(h.checks) == 0 {
		return response
	}

	// Проверяем зависимости с таймаутом
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	response.Components = make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			response.Status = "degraded"
			response.Components[check.Name] = "unavailable"
			h.logger.Warn("health check: dependency unavailable",
				zap.String("component", check.Name),
				zap.Error(err),
			)
			continue
		}
		response.Components[check.Name] = "ok"
	}
	return response
}

// Health возвращает статус приложения
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := h.run(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if response.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", zap.Error(err))
	}
}

// Ready возвращает готовность приложения принимать трафик
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if response := h.run(r.Context()); response.Status != "ok" {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
