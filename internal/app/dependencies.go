package app

import (
	"context"
	"fmt"

	"github.com/avc/pos-pricing/internal/catalog"
	"github.com/avc/pos-pricing/internal/config"
	"github.com/avc/pos-pricing/internal/currency"
	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/exchange"
	"github.com/avc/pos-pricing/internal/handlers"
	"github.com/avc/pos-pricing/internal/metrics"
	"github.com/avc/pos-pricing/internal/pricing"
	"github.com/avc/pos-pricing/internal/repository/memory"
	"github.com/avc/pos-pricing/internal/repository/postgres"
	"github.com/avc/pos-pricing/internal/service"
	"github.com/avc/pos-pricing/internal/worker"
	"go.uber.org/zap"
)

// repositories содержит все репозитории приложения
type repositories struct {
	rates      domain.RateRepository
	discounts  domain.DiscountRepository
	currencies domain.CurrencyRepository
}

// services содержит все сервисы приложения
type services struct {
	currencies *service.CurrencyService
	conversion *service.ConversionService
	pricing    *service.PricingService
	rates      *service.RateService
	provider   domain.RateProvider
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	pricing    *handlers.PricingHandler
	conversion *handlers.ConversionHandler
	rates      *handlers.RatesHandler
	currencies *handlers.CurrenciesHandler
	health     *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	registry   *currency.Registry
	store      *exchange.Store
	infra      *infrastructure
	workerPool *worker.Pool
}

// loadCatalog читает файл каталога или возвращает встроенный каталог
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// initRepositories создает репозитории. Без базы данных валюты и скидки
// берутся из каталога, курсы хранятся в памяти процесса.
func initRepositories(infra *infrastructure, cat *catalog.Catalog) *repositories {
	if infra.db != nil {
		return &repositories{
			rates:      postgres.NewRateRepository(infra.db),
			discounts:  postgres.NewDiscountRepository(infra.db),
			currencies: postgres.NewCurrencyRepository(infra.db),
		}
	}
	return &repositories{
		rates:      memory.NewRateRepository(nil),
		discounts:  memory.NewDiscountRepository(cat.Discounts),
		currencies: memory.NewCurrencyRepository(cat.Currencies),
	}
}

// initRateCache выбирает общий кеш в Redis или локальный кеш процесса
func initRateCache(cfg *config.Config, infra *infrastructure, logger *zap.Logger) exchange.Cache {
	if infra.redis != nil {
		return exchange.NewRedisCache(infra.redis, "", cfg.RateCacheTTL, logger)
	}
	return exchange.NewMemoryCache(cfg.RateCacheTTL, nil)
}

// initDependencies создает все зависимости приложения
func initDependencies(ctx context.Context, cfg *config.Config, infra *infrastructure, logger *zap.Logger) (*dependencies, error) {
	cat, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	m := metrics.New(infra.registry)

	// Создание репозиториев
	repos := initRepositories(infra, cat)

	// Хранилище курсов
	store := exchange.NewStore(repos.rates, initRateCache(cfg, infra, logger), logger, exchange.WithMetrics(m))
	if infra.db == nil {
		if err := cat.SeedRates(ctx, store); err != nil {
			return nil, err
		}
	}

	// Реестр валют заполняется из репозитория
	registry := currency.NewRegistry(nil)
	currencySvc := service.NewCurrencyService(repos.currencies, registry, logger)
	if err := currencySvc.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	base, err := registry.Base()
	if err != nil {
		return nil, err
	}

	engine := pricing.NewEngine(logger,
		pricing.WithMetrics(m),
		pricing.WithLocation(cfg.StoreTimezone),
		pricing.WithDefaultTaxRate(cfg.DefaultTaxRate),
		pricing.WithBaseCurrency(base.Code),
	)

	provider, err := service.NewRateProvider(cfg.RateProvider, service.ProviderConfig{
		Address: cfg.RateProviderAddress,
		Timeout: cfg.RateProviderTimeout,
		Rates:   cat.StaticRates(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate provider: %w", err)
	}

	// Создание сервисов
	svcs := &services{
		currencies: currencySvc,
		conversion: service.NewConversionService(store, registry),
		pricing:    service.NewPricingService(repos.discounts, engine, registry, logger),
		rates:      service.NewRateService(store, registry, cfg.RateMaxAge),
		provider:   provider,
	}

	// Создание handlers
	hdlrs := &handlerSet{
		pricing:    handlers.NewPricingHandler(svcs.pricing, logger),
		conversion: handlers.NewConversionHandler(svcs.conversion, logger),
		rates:      handlers.NewRatesHandler(svcs.rates, logger),
		currencies: handlers.NewCurrenciesHandler(registry, logger),
		health:     handlers.NewHealthHandler(logger, healthChecks(infra)...),
	}

	// Создание worker pool
	workerPool := worker.NewPool(
		cfg.WorkerPoolSize,
		cfg.WorkerQueueSize,
		store,
		registry,
		provider,
		logger,
		worker.WithScanInterval(cfg.WorkerScanInterval),
		worker.WithMaxAge(cfg.RateMaxAge),
		worker.WithMetrics(m),
	)

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		registry:   registry,
		store:      store,
		infra:      infra,
		workerPool: workerPool,
	}, nil
}

// healthChecks возвращает проверки настроенных подключений
func healthChecks(infra *infrastructure) []handlers.Check {
	var checks []handlers.Check
	if infra.db != nil {
		checks = append(checks, handlers.Check{Name: "database", Ping: infra.db.Ping})
	}
	if infra.redis != nil {
		client := infra.redis
		checks = append(checks, handlers.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	}
	return checks
}
