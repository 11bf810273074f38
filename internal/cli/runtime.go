package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avc/pos-pricing/internal/catalog"
	"github.com/avc/pos-pricing/internal/currency"
	"github.com/avc/pos-pricing/internal/exchange"
	"github.com/avc/pos-pricing/internal/pricing"
	"github.com/avc/pos-pricing/internal/repository/memory"
	"github.com/avc/pos-pricing/internal/service"
	"github.com/shopspring/decimal"
)

const rateMaxAge = time.Hour

// runtime - сервисы, собранные поверх каталога в памяти процесса
type runtime struct {
	catalog    *catalog.Catalog
	registry   *currency.Registry
	store      *exchange.Store
	conversion *service.ConversionService
	rates      *service.RateService
	pricing    *service.PricingService
}

type pricingOptions struct {
	taxRate  decimal.Decimal
	location *time.Location
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func newRuntime(ctx context.Context, opts *rootOptions, popts pricingOptions) (*runtime, error) {
	logger := opts.logger()

	cat, err := loadCatalog(opts.catalogFile)
	if err != nil {
		return nil, err
	}

	registry := currency.NewRegistry(cat.Currencies)
	base, err := registry.Base()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	store := exchange.NewStore(memory.NewRateRepository(nil), exchange.NewMemoryCache(exchange.DefaultCacheTTL, nil), logger)
	if err := cat.SeedRates(ctx, store); err != nil {
		return nil, err
	}

	if popts.location == nil {
		popts.location = time.UTC
	}
	engine := pricing.NewEngine(logger,
		pricing.WithLocation(popts.location),
		pricing.WithDefaultTaxRate(popts.taxRate),
		pricing.WithBaseCurrency(base.Code),
	)

	return &runtime{
		catalog:    cat,
		registry:   registry,
		store:      store,
		conversion: service.NewConversionService(store, registry),
		rates:      service.NewRateService(store, registry, rateMaxAge),
		pricing:    service.NewPricingService(memory.NewDiscountRepository(cat.Discounts), engine, registry, logger),
	}, nil
}

// baseOptions возвращает параметры расчета без налога
func baseOptions() pricingOptions {
	return pricingOptions{taxRate: decimal.Zero, location: time.UTC}
}
