package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// Виды поставщиков курсов
const (
	ProviderHTTP   = "http"
	ProviderStatic = "static"
)

// ProviderConfig - параметры для создания поставщика курсов
type ProviderConfig struct {
	Address string
	Timeout time.Duration
	// Rates - курсы для статического поставщика: base -> target -> rate
	Rates map[string]map[string]decimal.Decimal
}

// ProviderFactory создает поставщика курсов по конфигурации
type ProviderFactory func(cfg ProviderConfig) (domain.RateProvider, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{
		ProviderHTTP:   newHTTPProviderFromConfig,
		ProviderStatic: newStaticProviderFromConfig,
	}
)

// RegisterRateProvider регистрирует фабрику поставщика под ключом kind
func RegisterRateProvider(kind string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[strings.ToLower(kind)] = factory
}

// RateProviderKinds возвращает зарегистрированные виды поставщиков
func RateProviderKinds() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()

	kinds := make([]string, 0, len(providers))
	for kind := range providers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// NewRateProvider создает поставщика курсов по ключу
func NewRateProvider(kind string, cfg ProviderConfig) (domain.RateProvider, error) {
	providersMu.RLock()
	factory, ok := providers[strings.ToLower(strings.TrimSpace(kind))]
	providersMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, kind)
	}
	return factory(cfg)
}

func newHTTPProviderFromConfig(cfg ProviderConfig) (domain.RateProvider, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("%w: http provider requires an address", ErrProviderMisconfigured)
	}
	return NewHTTPRateProvider(cfg.Address, cfg.Timeout), nil
}

func newStaticProviderFromConfig(cfg ProviderConfig) (domain.RateProvider, error) {
	return NewStaticRateProvider(cfg.Rates), nil
}

// StaticRateProvider отдает заранее заданные курсы.
// Используется без внешнего сервиса: из каталога или в тестах.
type StaticRateProvider struct {
	rates map[string]map[string]decimal.Decimal
}

var _ domain.RateProvider = (*StaticRateProvider)(nil)

// NewStaticRateProvider создает статического поставщика
func NewStaticRateProvider(rates map[string]map[string]decimal.Decimal) *StaticRateProvider {
	normalized := make(map[string]map[string]decimal.Decimal, len(rates))
	for base, targets := range rates {
		b := domain.NormalizeCode(base)
		if normalized[b] == nil {
			normalized[b] = make(map[string]decimal.Decimal, len(targets))
		}
		for target, rate := range targets {
			normalized[b][domain.NormalizeCode(target)] = rate
		}
	}
	return &StaticRateProvider{rates: normalized}
}

// FetchRates возвращает известные курсы для запрошенных валют
func (p *StaticRateProvider) FetchRates(_ context.Context, base string, targets []string) (map[string]decimal.Decimal, error) {
	return filterRates(p.rates[domain.NormalizeCode(base)], targets), nil
}
