package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"valora.backend/internal/domain/entities"
	"valora.backend/pkg/logger"
	"valora.backend/pkg/redis"
)

const cacheTTL = time.Hour

// fallbackRates are used when both the price API and the cache are unavailable
var fallbackRates = map[string]decimal.Decimal{
	"bitcoin":  decimal.NewFromInt(45000),
	"ethereum": decimal.NewFromInt(3000),
	"tether":   decimal.NewFromInt(1),
}

// Service fetches USD exchange rates for supported currencies
type Service struct {
	baseURL string
	client  *http.Client
}

// NewService creates a price feed service
func NewService(baseURL string, timeout time.Duration) *Service {
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetRate returns the current USD price for a currency. It tries the live
// API first, then the last cached rate, then a hardcoded fallback.
func (s *Service) GetRate(ctx context.Context, currency entities.Currency) (decimal.Decimal, error) {
	if !currency.IsValid() {
		return decimal.Zero, fmt.Errorf("unsupported currency: %s", currency)
	}

	priceID := currency.PriceID()

	rate, err := s.fetchRate(ctx, priceID)
	if err == nil {
		s.cacheRate(ctx, priceID, rate)
		return rate, nil
	}
	logger.Warn(ctx, "price api unavailable, falling back to cache",
		zap.String("currency", string(currency)),
		zap.Error(err))

	if cached, ok := s.cachedRate(ctx, priceID); ok {
		return cached, nil
	}

	fallback, ok := fallbackRates[priceID]
	if !ok {
		return decimal.Zero, fmt.Errorf("no rate available for %s", currency)
	}
	logger.Warn(ctx, "using hardcoded fallback rate",
		zap.String("currency", string(currency)),
		zap.String("rate", fallback.String()))
	return fallback, nil
}

func (s *Service) fetchRate(ctx context.Context, priceID string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", s.baseURL, priceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("price api returned status %d", resp.StatusCode)
	}

	var body map[string]struct {
		USD json.Number `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, err
	}

	entry, ok := body[priceID]
	if !ok {
		return decimal.Zero, fmt.Errorf("price api response missing %s", priceID)
	}

	rate, err := decimal.NewFromString(entry.USD.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate for %s: %w", priceID, err)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("non-positive rate for %s", priceID)
	}
	return rate, nil
}

func (s *Service) cacheRate(ctx context.Context, priceID string, rate decimal.Decimal) {
	if err := redis.Set(ctx, cacheKey(priceID), rate.String(), cacheTTL); err != nil {
		logger.Debug(ctx, "failed to cache rate", zap.Error(err))
	}
}

func (s *Service) cachedRate(ctx context.Context, priceID string) (decimal.Decimal, bool) {
	val, err := redis.Get(ctx, cacheKey(priceID))
	if err != nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

func cacheKey(priceID string) string {
	return "rates:" + priceID
}
