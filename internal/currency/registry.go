// Package currency хранит набор настроенных валют и форматирует суммы.
package currency

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// fallbackPlaces - точность для неизвестной валюты
const fallbackPlaces = 2

// Registry хранит определения валют.
// Набор заменяется целиком через Replace, читатели видят согласованный снимок.
type Registry struct {
	mu         sync.RWMutex
	currencies map[string]domain.CurrencyDefinition
}

// NewRegistry создает реестр с начальным набором валют
func NewRegistry(defs []domain.CurrencyDefinition) *Registry {
	r := &Registry{}
	r.Replace(defs)
	return r
}

// Replace заменяет набор валют
func (r *Registry) Replace(defs []domain.CurrencyDefinition) {
	currencies := make(map[string]domain.CurrencyDefinition, len(defs))
	for _, def := range defs {
		def.Code = domain.NormalizeCode(def.Code)
		if def.Code == "" {
			continue
		}
		if def.SymbolPosition == "" {
			def.SymbolPosition = domain.SymbolBefore
		}
		currencies[def.Code] = def
	}

	r.mu.Lock()
	r.currencies = currencies
	r.mu.Unlock()
}

// ListActive возвращает активные валюты, отсортированные по коду
func (r *Registry) ListActive() ([]domain.CurrencyDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]domain.CurrencyDefinition, 0, len(r.currencies))
	for _, def := range r.currencies {
		if def.IsActive {
			active = append(active, def)
		}
	}

	if len(active) == 0 {
		return nil, fmt.Errorf("%w: no active currencies configured", domain.ErrConfiguration)
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Code < active[j].Code
	})

	return active, nil
}

// Base возвращает базовую валюту.
// Отсутствие базовой валюты и несколько базовых валют - ошибки конфигурации.
func (r *Registry) Base() (domain.CurrencyDefinition, error) {
	active, err := r.ListActive()
	if err != nil {
		return domain.CurrencyDefinition{}, err
	}

	var bases []domain.CurrencyDefinition
	for _, def := range active {
		if def.IsBaseCurrency {
			bases = append(bases, def)
		}
	}

	switch len(bases) {
	case 0:
		return domain.CurrencyDefinition{}, fmt.Errorf("%w: no base currency configured", domain.ErrConfiguration)
	case 1:
		return bases[0], nil
	default:
		codes := make([]string, len(bases))
		for i, def := range bases {
			codes[i] = def.Code
		}
		return domain.CurrencyDefinition{}, fmt.Errorf("%w: ambiguous base currency %v", domain.ErrConfiguration, codes)
	}
}

// ByCode ищет валюту по коду
func (r *Registry) ByCode(code string) (domain.CurrencyDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.currencies[domain.NormalizeCode(code)]
	return def, ok
}

// IsValid сообщает, известна ли валюта и активна ли она
func (r *Registry) IsValid(code string) bool {
	def, ok := r.ByCode(code)
	return ok && def.IsActive
}

// Format форматирует сумму с символом валюты.
// Для неизвестной валюты используется вид "CODE 0.00".
func (r *Registry) Format(amount decimal.Decimal, code string) string {
	def, ok := r.ByCode(code)
	if !ok {
		return fmt.Sprintf("%s %s", domain.NormalizeCode(code), amount.StringFixed(fallbackPlaces))
	}

	places := def.DecimalPlaces
	if places < 0 {
		places = 0
	}
	value := amount.StringFixed(places)

	if def.SymbolPosition == domain.SymbolAfter {
		return value + def.Symbol
	}
	return def.Symbol + value
}

// FormatMoney форматирует сумму вместе с ее валютой
func (r *Registry) FormatMoney(m domain.Money) string {
	return r.Format(m.Amount, m.Currency)
}
