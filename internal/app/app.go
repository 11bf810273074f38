package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avc/pos-pricing/internal/config"
	"github.com/avc/pos-pricing/internal/worker"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App представляет приложение
type App struct {
	config     *config.Config
	logger     *zap.Logger
	infra      *infrastructure
	router     *chi.Mux
	workerPool *worker.Pool
	server     *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Подключение к базе данных и Redis, если они настроены
	infra, err := initInfrastructure(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Инициализация зависимостей
	deps, err := initDependencies(ctx, cfg, infra, logger)
	if err != nil {
		infra.close(logger)
		return nil, err
	}

	// Настройка роутера
	router := setupRouter(deps, logger)

	// Создание HTTP сервера
	server := createServer(cfg.RunAddress, router)

	return &App{
		config:     cfg,
		logger:     logger,
		infra:      infra,
		router:     router,
		workerPool: deps.workerPool,
		server:     server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск worker pool
	a.workerPool.Start(ctx)
	a.logger.Info("worker pool started")

	// Запуск HTTP сервера и ожидание сигнала завершения
	serverErr := a.runServer()

	// Graceful shutdown
	a.shutdown(cancel)

	return serverErr
}
