package app

import (
	"context"
	"fmt"

	"github.com/avc/pos-pricing/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// infrastructure содержит внешние подключения приложения.
// db и redis равны nil, если соответствующий адрес не настроен.
type infrastructure struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	registry *prometheus.Registry
}

// newMetricsRegistry создает реестр метрик со стандартными коллекторами процесса
func newMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// initInfrastructure подключается к базе данных и Redis
func initInfrastructure(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*infrastructure, error) {
	infra := &infrastructure{registry: newMetricsRegistry()}

	if cfg.DatabaseURI != "" {
		db, err := initDatabase(ctx, cfg.DatabaseURI, logger)
		if err != nil {
			return nil, err
		}
		infra.db = db
		logger.Info("connected to database")
	} else {
		logger.Warn("database URI is not set, using in-memory stores")
	}

	if cfg.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			infra.close(logger)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		infra.redis = client
		logger.Info("connected to redis", zap.String("address", cfg.RedisAddress))
	}

	return infra, nil
}

// close закрывает подключения
func (i *infrastructure) close(logger *zap.Logger) {
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			logger.Error("redis close error", zap.Error(err))
		}
		logger.Info("redis connection closed")
	}
	if i.db != nil {
		i.db.Close()
		logger.Info("database connection closed")
	}
}
