// Package metrics содержит prometheus-метрики ядра расчета цен и курсов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pos"

// Metrics объединяет счетчики сервиса
type Metrics struct {
	RateFallbacks               *prometheus.CounterVec
	RateCacheHits               prometheus.Counter
	RateCacheMisses             prometheus.Counter
	RateUpdates                 *prometheus.CounterVec
	RateCacheInvalidationErrors prometheus.Counter
	PricingRequests             *prometheus.CounterVec
	DiscountsApplied            *prometheus.CounterVec
	DiscountsSkipped            *prometheus.CounterVec
	RateRefreshes               *prometheus.CounterVec
}

// New создает метрики и регистрирует их в reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RateFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_fallback_total",
			Help:      "Lookups that found no stored rate in either direction and fell back to 1.",
		}, []string{"base", "target"}),
		RateCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_cache_hits_total",
			Help:      "Exchange rate lookups served from the cache.",
		}),
		RateCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_cache_misses_total",
			Help:      "Exchange rate lookups that went to the repository.",
		}),
		RateUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_updates_total",
			Help:      "Exchange rate updates by source.",
		}, []string{"source"}),
		RateCacheInvalidationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_cache_invalidation_errors_total",
			Help:      "Rate updates that were stored but could not be evicted from the cache.",
		}),
		PricingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_requests_total",
			Help:      "Cart pricing passes by outcome.",
		}, []string{"outcome"}),
		DiscountsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_applied_total",
			Help:      "Discounts that contributed to a priced cart, by type.",
		}, []string{"type"}),
		DiscountsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discounts_skipped_total",
			Help:      "Malformed discounts skipped during pricing, by reason.",
		}, []string{"reason"}),
		RateRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_refresh_total",
			Help:      "Background rate refresh attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.RateFallbacks,
		m.RateCacheHits,
		m.RateCacheMisses,
		m.RateUpdates,
		m.RateCacheInvalidationErrors,
		m.PricingRequests,
		m.DiscountsApplied,
		m.DiscountsSkipped,
		m.RateRefreshes,
	)

	return m
}

// NewUnregistered создает метрики, не привязанные к глобальному реестру.
// Используется в тестах и утилитах командной строки.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
