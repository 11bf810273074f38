package service

import (
	"context"
	"fmt"

	"github.com/avc/pos-pricing/internal/currency"
	"github.com/avc/pos-pricing/internal/domain"
	"go.uber.org/zap"
)

// CurrencyReplacer принимает новый набор валют
type CurrencyReplacer interface {
	Replace(defs []domain.CurrencyDefinition)
}

// CurrencyService загружает набор валют из репозитория в реестр
type CurrencyService struct {
	repo     domain.CurrencyRepository
	registry CurrencyReplacer
	logger   *zap.Logger
}

// NewCurrencyService создает сервис валют
func NewCurrencyService(repo domain.CurrencyRepository, registry CurrencyReplacer, logger *zap.Logger) *CurrencyService {
	return &CurrencyService{
		repo:     repo,
		registry: registry,
		logger:   logger,
	}
}

// Reload перечитывает валюты. Набор без единственной базовой валюты
// отклоняется, реестр при этом сохраняет прежнее состояние.
func (s *CurrencyService) Reload(ctx context.Context) error {
	defs, err := s.repo.GetCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("currency service: failed to load currencies: %w", err)
	}

	base, err := currency.NewRegistry(defs).Base()
	if err != nil {
		return fmt.Errorf("currency service: rejected currency set: %w", err)
	}

	s.registry.Replace(defs)
	s.logger.Info("Currencies loaded",
		zap.Int("count", len(defs)),
		zap.String("base", base.Code),
	)
	return nil
}
