package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
	shutdownTimeout    = 10 * time.Second
)

// createServer создает HTTP сервер
func createServer(addr string, handler *chi.Mux) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}
}

// runServer запускает HTTP сервер и ожидает сигнала завершения
// или ошибки запуска сервера
func (a *App) runServer() error {
	serverErr := make(chan error, 1)

	// Запуск HTTP сервера в горутине
	go func() {
		a.logger.Info("starting HTTP server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		a.logger.Info("received signal", zap.String("signal", sig.String()))
		return nil
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}
}

// shutdown выполняет graceful shutdown приложения
func (a *App) shutdown(cancel context.CancelFunc) {
	a.logger.Info("shutting down server...")

	// Останавливаем прием новых запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
	}

	// Останавливаем worker pool
	cancel()
	a.workerPool.Stop()
	a.logger.Info("worker pool stopped")

	// Закрываем соединения с БД и Redis
	a.infra.close(a.logger)

	a.logger.Info("server stopped gracefully")
	_ = a.logger.Sync()
}
