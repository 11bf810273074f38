package service

import (
	"context"

	"github.com/avc/pos-pricing/internal/currency"
	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRegistry() *currency.Registry {
	return currency.NewRegistry([]domain.CurrencyDefinition{
		{Code: "USD", Symbol: "$", SymbolPosition: domain.SymbolBefore, DecimalPlaces: 2, IsActive: true, IsBaseCurrency: true},
		{Code: "EUR", Symbol: "€", SymbolPosition: domain.SymbolAfter, DecimalPlaces: 2, IsActive: true},
		{Code: "LKR", Symbol: "Rs", SymbolPosition: domain.SymbolBefore, DecimalPlaces: 2, IsActive: true},
		{Code: "JPY", Symbol: "¥", DecimalPlaces: 0, IsActive: true},
		{Code: "GBP", Symbol: "£", DecimalPlaces: 2, IsActive: false},
	})
}

// stubRates возвращает курсы из карты, для остальных пар - 1
type stubRates map[string]decimal.Decimal

func (s stubRates) CurrentRate(_ context.Context, base, target string) decimal.Decimal {
	if rate, ok := s[domain.PairKey(base, target)]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}
