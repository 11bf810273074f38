package postgres

import (
	"context"
	"fmt"

	"github.com/avc/pos-pricing/internal/domain"
)

// CurrencyRepository реализует domain.CurrencyRepository
type CurrencyRepository struct {
	db DBTX
}

var _ domain.CurrencyRepository = (*CurrencyRepository)(nil)

// NewCurrencyRepository создает новый CurrencyRepository
func NewCurrencyRepository(db DBTX) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// GetCurrencies возвращает все настроенные валюты
func (r *CurrencyRepository) GetCurrencies(ctx context.Context) ([]domain.CurrencyDefinition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT code, name, symbol, symbol_position, decimal_places, is_active, is_base_currency
		 FROM currencies
		 ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.CurrencyDefinition
	for rows.Next() {
		var (
			def      domain.CurrencyDefinition
			position string
		)
		err := rows.Scan(&def.Code, &def.Name, &def.Symbol, &position, &def.DecimalPlaces,
			&def.IsActive, &def.IsBaseCurrency)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan currency: %w", err)
		}
		def.SymbolPosition = domain.SymbolPosition(position)
		currencies = append(currencies, def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating currencies: %w", err)
	}

	return currencies, nil
}
