package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/farmvale/cryptofarm/internal/domain"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/metrics"
)

const quoteCacheSize = 64

// Service resolves currency codes to their reference-fiat rate and converts
// fiat prices into currency units at the moment of balance mutation.
type Service interface {
	// Rate returns the fiat value of one currency unit
	Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error)

	// Convert turns a fiat price into currency units: price / rate
	Convert(ctx context.Context, fiatPrice decimal.Decimal, currencyCode string) (decimal.Decimal, error)

	// Refresh re-fetches quotes for the given codes, keeping the cache warm
	Refresh(ctx context.Context, currencyCodes []string)
}

// cachedQuote keeps the fetch time so freshness can be judged separately
// from cache residency: entries live staleMax in the LRU but are only
// considered fresh for ttl.
type cachedQuote struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

type service struct {
	oracle Oracle
	cache  *expirable.LRU[string, cachedQuote]
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a pricing service. ttl bounds how long a quote is served
// without asking the oracle; staleMax bounds how stale a quote may be served
// as a fallback when the oracle is down.
func NewService(oracle Oracle, ttl, staleMax time.Duration) Service {
	return &service{
		oracle: oracle,
		cache:  expirable.NewLRU[string, cachedQuote](quoteCacheSize, nil, staleMax),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *service) Rate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	cached, found := s.cache.Get(currencyCode)
	if found && s.now().Sub(cached.fetchedAt) < s.ttl {
		metrics.QuoteCacheHits.Inc()
		return cached.rate, nil
	}
	metrics.QuoteCacheMisses.Inc()

	rate, err := s.oracle.Quote(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			metrics.OracleRequests.WithLabelValues(metrics.ResultError).Inc()
			return decimal.Zero, err
		}
		metrics.OracleRequests.WithLabelValues(metrics.ResultError).Inc()

		// Serve the stale quote rather than stall or fail the caller,
		// as long as it is still within the fallback window.
		if found {
			log.Warn("Oracle unavailable, serving stale quote",
				"currency", currencyCode, "age", s.now().Sub(cached.fetchedAt), "error", err)
			metrics.StaleQuotesServed.Inc()
			return cached.rate, nil
		}

		log.Error("Oracle unavailable and no cached quote", "currency", currencyCode, "error", err)
		return decimal.Zero, err
	}
	metrics.OracleRequests.WithLabelValues(metrics.ResultSuccess).Inc()

	s.cache.Add(currencyCode, cachedQuote{rate: rate, fetchedAt: s.now()})
	return rate, nil
}

func (s *service) Convert(ctx context.Context, fiatPrice decimal.Decimal, currencyCode string) (decimal.Decimal, error) {
	rate, err := s.Rate(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	if rate.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate for %s", domain.ErrOracleUnavailable, currencyCode)
	}
	return fiatPrice.Div(rate), nil
}

func (s *service) Refresh(ctx context.Context, currencyCodes []string) {
	log := logger.FromContext(ctx)
	for _, code := range currencyCodes {
		rate, err := s.oracle.Quote(ctx, code)
		if err != nil {
			log.Warn("Quote refresh failed", "currency", code, "error", err)
			metrics.OracleRequests.WithLabelValues(metrics.ResultError).Inc()
			continue
		}
		metrics.OracleRequests.WithLabelValues(metrics.ResultSuccess).Inc()
		s.cache.Add(code, cachedQuote{rate: rate, fetchedAt: s.now()})
	}
}
