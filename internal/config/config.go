package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Поставщики курсов
const (
	ProviderStatic = "static"
	ProviderHTTP   = "http"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress  string // Адрес и порт запуска сервиса
	DatabaseURI string // URI подключения к БД, пусто - хранилища в памяти
	LogLevel    string // Уровень логирования
	CatalogFile string // TOML-каталог валют, скидок и начальных курсов

	// Курсы валют
	RedisAddress        string        // Адрес Redis для общего кеша курсов, пусто - кеш в памяти
	RateProvider        string        // Поставщик курсов: static или http
	RateProviderAddress string        // Адрес HTTP поставщика курсов
	RateProviderTimeout time.Duration // Таймаут запроса к поставщику
	RateCacheTTL        time.Duration // Время жизни курса в кеше
	RateMaxAge          time.Duration // Возраст, после которого курс устаревает

	// Расчет корзины
	DefaultTaxRate decimal.Decimal // Ставка налога в процентах, если в корзине не указана
	StoreTimezone  *time.Location  // Часовой пояс магазина для окон действия скидок

	// Worker Pool конфигурация
	WorkerPoolSize     int           // Количество воркеров
	WorkerQueueSize    int           // Размер очереди пар валют
	WorkerScanInterval time.Duration // Интервал сканирования устаревших курсов
}

// Load загружает конфигурацию из переменных окружения и флагов командной строки
func Load() (*Config, error) {
	return LoadFrom(os.Args[1:], os.LookupEnv)
}

// LoadFrom загружает конфигурацию из аргументов и источника переменных окружения.
// Приоритет: env переменные > флаги > дефолтные значения
func LoadFrom(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		LogLevel:            "info",
		RateProvider:        ProviderStatic,
		RateProviderTimeout: 5 * time.Second,
		RateCacheTTL:        5 * time.Minute,
		RateMaxAge:          60 * time.Minute,
		DefaultTaxRate:      decimal.Zero,
		StoreTimezone:       time.UTC,
		WorkerPoolSize:      3,
		WorkerQueueSize:     100,
		WorkerScanInterval:  time.Minute,
	}

	// Определяем флаги
	fs := flag.NewFlagSet("pos", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	fs.StringVar(&cfg.RedisAddress, "c", "", "redis address for the shared rate cache")
	fs.StringVar(&cfg.RateProviderAddress, "r", "", "rate provider address")
	fs.StringVar(&cfg.RateProvider, "p", cfg.RateProvider, "rate provider: static or http")
	fs.StringVar(&cfg.CatalogFile, "f", "", "catalog file with currencies, discounts and rates")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Переменные окружения имеют приоритет над флагами
	stringEnv := map[string]*string{
		"RUN_ADDRESS":           &cfg.RunAddress,
		"DATABASE_URI":          &cfg.DatabaseURI,
		"REDIS_ADDRESS":         &cfg.RedisAddress,
		"RATE_PROVIDER":         &cfg.RateProvider,
		"RATE_PROVIDER_ADDRESS": &cfg.RateProviderAddress,
		"CATALOG_FILE":          &cfg.CatalogFile,
		"LOG_LEVEL":             &cfg.LogLevel,
	}
	for key, target := range stringEnv {
		if value, ok := lookupEnv(key); ok {
			*target = value
		}
	}

	durationEnv := map[string]*time.Duration{
		"RATE_PROVIDER_TIMEOUT": &cfg.RateProviderTimeout,
		"RATE_CACHE_TTL":        &cfg.RateCacheTTL,
		"RATE_MAX_AGE":          &cfg.RateMaxAge,
		"WORKER_SCAN_INTERVAL":  &cfg.WorkerScanInterval,
	}
	for key, target := range durationEnv {
		if value, ok := lookupEnv(key); ok {
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				*target = d
			}
		}
	}

	// Worker Pool конфигурация из env
	if envWorkerPoolSize, ok := lookupEnv("WORKER_POOL_SIZE"); ok {
		if size, err := strconv.Atoi(envWorkerPoolSize); err == nil && size > 0 {
			cfg.WorkerPoolSize = size
		}
	}

	if envWorkerQueueSize, ok := lookupEnv("WORKER_QUEUE_SIZE"); ok {
		if size, err := strconv.Atoi(envWorkerQueueSize); err == nil && size > 0 {
			cfg.WorkerQueueSize = size
		}
	}

	// Налог и часовой пояс влияют на суммы, поэтому ошибка в них не игнорируется
	if envTaxRate, ok := lookupEnv("DEFAULT_TAX_RATE"); ok {
		rate, err := decimal.NewFromString(envTaxRate)
		if err != nil || rate.IsNegative() {
			return nil, fmt.Errorf("invalid DEFAULT_TAX_RATE %q", envTaxRate)
		}
		cfg.DefaultTaxRate = rate
	}

	if envTimezone, ok := lookupEnv("STORE_TIMEZONE"); ok {
		loc, err := time.LoadLocation(envTimezone)
		if err != nil {
			return nil, fmt.Errorf("invalid STORE_TIMEZONE %q: %w", envTimezone, err)
		}
		cfg.StoreTimezone = loc
	}

	// Валидация параметров
	switch cfg.RateProvider {
	case ProviderStatic:
	case ProviderHTTP:
		if cfg.RateProviderAddress == "" {
			return nil, fmt.Errorf("rate provider address is required for http provider (use -r flag or RATE_PROVIDER_ADDRESS env)")
		}
	default:
		return nil, fmt.Errorf("unknown rate provider %q (use %s or %s)", cfg.RateProvider, ProviderStatic, ProviderHTTP)
	}

	return cfg, nil
}
