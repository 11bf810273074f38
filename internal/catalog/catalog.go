// Package catalog загружает TOML-файл с начальными валютами, скидками и курсами.
// Файл используется сервисом без базы данных и утилитой posctl.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/avc/pos-pricing/internal/currency"
	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidCatalog возвращается при ошибке разбора или проверки каталога
var ErrInvalidCatalog = errors.New("invalid catalog")

// RateSeed - начальный курс пары
type RateSeed struct {
	Base   string          `toml:"base"`
	Target string          `toml:"target"`
	Rate   decimal.Decimal `toml:"rate"`
	Manual bool            `toml:"manual"`
}

// Catalog - содержимое файла каталога
type Catalog struct {
	Currencies []domain.CurrencyDefinition `toml:"currencies"`
	Discounts  []domain.Discount           `toml:"discounts"`
	Rates      []RateSeed                  `toml:"rates"`
}

// RateUpdater записывает курс пары
type RateUpdater interface {
	Update(ctx context.Context, base, target string, rate decimal.Decimal, source domain.RateSource, isManualOverride bool) (*domain.ExchangeRateHistoryEntry, error)
}

//go:embed default.toml
var defaultCatalog string

// Default возвращает встроенный каталог с валютами по умолчанию
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default catalog is invalid: %v", err))
	}
	return c
}

// Load читает и проверяет каталог из файла
func Load(path string) (*Catalog, error) {
	var c Catalog
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, path, err)
	}
	return finish(&c, md)
}

// Parse разбирает каталог из строки
func Parse(data string) (*Catalog, error) {
	var c Catalog
	md, err := toml.Decode(data, &c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return finish(&c, md)
}

func finish(c *Catalog, md toml.MetaData) (*Catalog, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalidCatalog, strings.Join(keys, ", "))
	}

	c.normalize()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) normalize() {
	for i := range c.Currencies {
		def := &c.Currencies[i]
		def.Code = domain.NormalizeCode(def.Code)
		if def.SymbolPosition == "" {
			def.SymbolPosition = domain.SymbolBefore
		}
	}
	for i := range c.Rates {
		c.Rates[i].Base = domain.NormalizeCode(c.Rates[i].Base)
		c.Rates[i].Target = domain.NormalizeCode(c.Rates[i].Target)
	}
}

func (c *Catalog) validate() error {
	registry := currency.NewRegistry(c.Currencies)
	if _, err := registry.Base(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(c.Discounts))
	for i, d := range c.Discounts {
		if d.ID == "" {
			return fmt.Errorf("%w: discount #%d has no id", ErrInvalidCatalog, i)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate discount id %q", ErrInvalidCatalog, d.ID)
		}
		seen[d.ID] = true
	}

	for _, r := range c.Rates {
		pair := domain.PairKey(r.Base, r.Target)
		if !registry.IsValid(r.Base) || !registry.IsValid(r.Target) {
			return fmt.Errorf("%w: rate %s refers to unknown currency", ErrInvalidCatalog, pair)
		}
		if r.Base == r.Target {
			return fmt.Errorf("%w: rate %s: %v", ErrInvalidCatalog, pair, domain.ErrIdentityRate)
		}
		if !r.Rate.IsPositive() {
			return fmt.Errorf("%w: rate %s: %v", ErrInvalidCatalog, pair, domain.ErrInvalidRate)
		}
	}
	return nil
}

// StaticRates возвращает курсы каталога в виде base -> target -> rate
// для статического поставщика курсов
func (c *Catalog) StaticRates() map[string]map[string]decimal.Decimal {
	rates := make(map[string]map[string]decimal.Decimal)
	for _, r := range c.Rates {
		if rates[r.Base] == nil {
			rates[r.Base] = make(map[string]decimal.Decimal)
		}
		rates[r.Base][r.Target] = r.Rate
	}
	return rates
}

// SeedRates записывает курсы каталога. Курсы с manual = true
// записываются как ручные и не перезаписываются фоновым обновлением.
func (c *Catalog) SeedRates(ctx context.Context, store RateUpdater) error {
	for _, r := range c.Rates {
		source := domain.RateSourceAPI
		if r.Manual {
			source = domain.RateSourceManual
		}
		if _, err := store.Update(ctx, r.Base, r.Target, r.Rate, source, r.Manual); err != nil {
			return fmt.Errorf("catalog: failed to seed rate %s: %w", domain.PairKey(r.Base, r.Target), err)
		}
	}
	return nil
}
