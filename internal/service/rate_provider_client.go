package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultProviderTimeout = 10 * time.Second

// latestRatesResponse - ответ поставщика: {"base":"USD","rates":{"EUR":0.85}}
type latestRatesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// HTTPRateProvider получает курсы у внешнего сервиса по HTTP
type HTTPRateProvider struct {
	baseURL    string
	httpClient *http.Client
}

var _ domain.RateProvider = (*HTTPRateProvider)(nil)

// NewHTTPRateProvider создает клиента поставщика курсов
func NewHTTPRateProvider(baseURL string, timeout time.Duration) *HTTPRateProvider {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &HTTPRateProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRates запрашивает курсы base -> targets.
// В результат попадают только запрошенные валюты с положительным курсом.
func (c *HTTPRateProvider) FetchRates(ctx context.Context, base string, targets []string) (map[string]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("base", base)
	if len(targets) > 0 {
		query.Set("symbols", strings.Join(targets, ","))
	}
	endpoint := fmt.Sprintf("%s/latest?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("rate provider: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate provider: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body latestRatesResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("rate provider: failed to decode response: %w", err)
		}
		if body.Base != "" && !strings.EqualFold(body.Base, base) {
			return nil, fmt.Errorf("rate provider: requested base %s, got %s", base, body.Base)
		}
		return filterRates(body.Rates, targets), nil

	case http.StatusTooManyRequests:
		// Повтор выполнит следующий проход планировщика
		seconds, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return nil, NewRateLimitError(time.Duration(seconds) * time.Second)

	default:
		return nil, fmt.Errorf("rate provider: unexpected status code: %d", resp.StatusCode)
	}
}

// filterRates оставляет запрошенные валюты с положительным курсом.
// Пустой targets - все валюты из ответа.
func filterRates(rates map[string]decimal.Decimal, targets []string) map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal, len(rates))
	if len(targets) == 0 {
		for code, rate := range rates {
			if rate.IsPositive() {
				result[domain.NormalizeCode(code)] = rate
			}
		}
		return result
	}

	normalized := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		normalized[domain.NormalizeCode(code)] = rate
	}
	for _, target := range targets {
		code := domain.NormalizeCode(target)
		if rate, ok := normalized[code]; ok && rate.IsPositive() {
			result[code] = rate
		}
	}
	return result
}
