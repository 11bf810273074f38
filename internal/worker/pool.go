package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/metrics"
	"github.com/avc/pos-pricing/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultScanInterval = time.Minute
	DefaultMaxAge       = time.Hour
)

// RateStore определяет операции хранилища курсов, нужные воркерам
type RateStore interface {
	ActiveRate(ctx context.Context, base, target string) (*domain.ExchangeRate, error)
	IsStale(ctx context.Context, base, target string, maxAge time.Duration) (bool, error)
	Update(ctx context.Context, base, target string, rate decimal.Decimal, source domain.RateSource, isManualOverride bool) (*domain.ExchangeRateHistoryEntry, error)
}

// CurrencyLister определяет источник активных валют
type CurrencyLister interface {
	ListActive() ([]domain.CurrencyDefinition, error)
	Base() (domain.CurrencyDefinition, error)
}

type pair struct {
	base   string
	target string
}

// Pool представляет пул воркеров для обновления устаревших курсов
type Pool struct {
	workers      int
	queue        chan pair
	store        RateStore
	currencies   CurrencyLister
	provider     domain.RateProvider
	metrics      *metrics.Metrics
	logger       *zap.Logger
	wg           sync.WaitGroup
	scanWG       sync.WaitGroup
	scanInterval time.Duration
	maxAge       time.Duration

	mu       sync.Mutex
	inFlight map[pair]struct{}
}

// Option настраивает Pool
type Option func(*Pool)

// WithScanInterval задает период сканирования устаревших курсов
func WithScanInterval(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.scanInterval = d
		}
	}
}

// WithMaxAge задает возраст, после которого курс считается устаревшим
func WithMaxAge(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.maxAge = d
		}
	}
}

// WithMetrics задает метрики пула
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}

// NewPool создает новый worker pool
func NewPool(
	workers int,
	queueSize int,
	store RateStore,
	currencies CurrencyLister,
	provider domain.RateProvider,
	logger *zap.Logger,
	opts ...Option,
) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	p := &Pool{
		workers:      workers,
		queue:        make(chan pair, queueSize),
		store:        store,
		currencies:   currencies,
		provider:     provider,
		logger:       logger,
		scanInterval: DefaultScanInterval,
		maxAge:       DefaultMaxAge,
		inFlight:     make(map[pair]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = metrics.NewUnregistered()
	}
	return p
}

// Start запускает worker pool
func (p *Pool) Start(ctx context.Context) {
	// Запускаем воркеры
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	// Запускаем сканер устаревших курсов
	p.scanWG.Add(1)
	go p.scanner(ctx)
}

// Stop останавливает worker pool. Вызывается после отмены контекста Start:
// очередь закрывается только когда сканер завершился.
func (p *Pool) Stop() {
	p.scanWG.Wait()
	close(p.queue)
	p.wg.Wait()
}

// worker обновляет курсы из очереди
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Info("worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping", zap.Int("worker_id", id))
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			p.refreshPair(ctx, job)
			p.release(job)
		}
	}
}

// scanner периодически ищет устаревшие курсы. Первый проход выполняется сразу.
func (p *Pool) scanner(ctx context.Context) {
	defer p.scanWG.Done()

	ticker := time.NewTicker(p.scanInterval)
	defer ticker.Stop()

	p.scanStaleRates(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("scanner stopping")
			return
		case <-ticker.C:
			p.scanStaleRates(ctx)
		}
	}
}

// scanStaleRates отправляет в очередь пары base -> target с устаревшим курсом
func (p *Pool) scanStaleRates(ctx context.Context) {
	for _, job := range p.stalePairs(ctx) {
		if !p.acquire(job) {
			continue
		}

		select {
		case p.queue <- job:
			// Успешно добавлено в очередь
		case <-ctx.Done():
			p.release(job)
			return
		default:
			// Очередь заполнена, пара попадет в следующий проход
			p.release(job)
			p.logger.Warn("queue is full, skipping pair",
				zap.String("pair", domain.PairKey(job.base, job.target)),
			)
		}
	}
}

// stalePairs возвращает пары от базовой валюты к активным валютам,
// курс которых отсутствует или устарел
func (p *Pool) stalePairs(ctx context.Context) []pair {
	base, err := p.currencies.Base()
	if err != nil {
		p.logger.Error("failed to resolve base currency", zap.Error(err))
		return nil
	}
	active, err := p.currencies.ListActive()
	if err != nil {
		p.logger.Error("failed to list active currencies", zap.Error(err))
		return nil
	}

	var pairs []pair
	for _, def := range active {
		if def.Code == base.Code {
			continue
		}
		stale, err := p.store.IsStale(ctx, base.Code, def.Code, p.maxAge)
		if err != nil {
			p.logger.Error("failed to check rate staleness",
				zap.String("pair", domain.PairKey(base.Code, def.Code)),
				zap.Error(err),
			)
			continue
		}
		if stale {
			pairs = append(pairs, pair{base: base.Code, target: def.Code})
		}
	}
	return pairs
}

func (p *Pool) acquire(job pair) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, busy := p.inFlight[job]; busy {
		return false
	}
	p.inFlight[job] = struct{}{}
	return true
}

func (p *Pool) release(job pair) {
	p.mu.Lock()
	delete(p.inFlight, job)
	p.mu.Unlock()
}

// refreshPair запрашивает курс пары у поставщика и сохраняет его
func (p *Pool) refreshPair(ctx context.Context, job pair) {
	key := domain.PairKey(job.base, job.target)
	p.logger.Debug("refreshing rate", zap.String("pair", key))

	// Ручной курс в любом направлении не перезаписывается
	manual, err := p.hasManualOverride(ctx, job)
	if err != nil {
		p.logger.Error("failed to get active rate", zap.String("pair", key), zap.Error(err))
		p.metrics.RateRefreshes.WithLabelValues("error").Inc()
		return
	}
	if manual {
		p.logger.Debug("manual override in place, skipping", zap.String("pair", key))
		p.metrics.RateRefreshes.WithLabelValues("manual").Inc()
		return
	}

	rates, err := p.provider.FetchRates(ctx, job.base, []string{job.target})
	if err != nil {
		// Обработка rate limiting: пара вернется в очередь при следующем сканировании
		var rateLimitErr *service.RateLimitError
		if errors.As(err, &rateLimitErr) {
			p.logger.Warn("rate limit exceeded",
				zap.String("pair", key),
				zap.Duration("retry_after", rateLimitErr.RetryAfter),
			)
			p.metrics.RateRefreshes.WithLabelValues("rate_limited").Inc()
			return
		}

		p.logger.Error("failed to fetch rate", zap.String("pair", key), zap.Error(err))
		p.metrics.RateRefreshes.WithLabelValues("error").Inc()
		return
	}

	rate, ok := rates[job.target]
	if !ok {
		p.logger.Warn("provider returned no rate", zap.String("pair", key))
		p.metrics.RateRefreshes.WithLabelValues("missing").Inc()
		return
	}

	if _, err := p.store.Update(ctx, job.base, job.target, rate, domain.RateSourceAPI, false); err != nil {
		p.logger.Error("failed to store rate",
			zap.String("pair", key),
			zap.String("rate", rate.String()),
			zap.Error(err),
		)
		p.metrics.RateRefreshes.WithLabelValues("error").Inc()
		return
	}

	p.metrics.RateRefreshes.WithLabelValues("updated").Inc()
}

func (p *Pool) hasManualOverride(ctx context.Context, job pair) (bool, error) {
	for _, candidate := range []pair{job, {base: job.target, target: job.base}} {
		record, err := p.store.ActiveRate(ctx, candidate.base, candidate.target)
		if errors.Is(err, domain.ErrRateNotFound) {
			continue
		}
		if err != nil {
			return false, err
		}
		return record.IsManualOverride, nil
	}
	return false, nil
}
