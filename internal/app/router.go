package app

import (
	"github.com/avc/pos-pricing/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies) {
	// Health check и метрики
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)
	r.Handle("/metrics", promhttp.HandlerFor(deps.infra.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/currencies", deps.handlers.currencies.List)
		r.Get("/currencies/{code}/rates", deps.handlers.rates.ListRates)

		r.Post("/rates", deps.handlers.rates.SetRate)
		r.Get("/rates/{base}/{target}", deps.handlers.rates.GetRate)
		r.Get("/rates/{base}/{target}/history", deps.handlers.rates.GetHistory)

		r.Post("/convert", deps.handlers.conversion.Convert)
		r.Post("/convert/batch", deps.handlers.conversion.BatchConvert)

		r.Post("/cart/price", deps.handlers.pricing.PriceCart)
	})
}
