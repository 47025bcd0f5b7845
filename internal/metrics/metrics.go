package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptofarm_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cryptofarm_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cryptofarm_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Business Metrics
var (
	FarmClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptofarm_farm_claims_total",
			Help: "Farm reward claims by outcome",
		},
		[]string{"outcome"},
	)

	Trades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptofarm_trades_total",
			Help: "Completed economy operations by type",
		},
		[]string{"type"},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cryptofarm_item_level_ups_total",
			Help: "Successful owned item level-ups",
		},
	)
)

// Oracle Metrics
var (
	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cryptofarm_oracle_requests_total",
			Help: "Price oracle requests by result",
		},
		[]string{"result"},
	)

	QuoteCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cryptofarm_quote_cache_hits_total",
			Help: "Price quote cache hits",
		},
	)

	QuoteCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cryptofarm_quote_cache_misses_total",
			Help: "Price quote cache misses",
		},
	)

	StaleQuotesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cryptofarm_stale_quotes_served_total",
			Help: "Quotes served past their freshness window after an oracle failure",
		},
	)
)

// Label values for the outcome/result/type dimensions
const (
	OutcomeSuccess = "success"
	OutcomeTooSoon = "too_soon"
	OutcomeError   = "error"

	ResultSuccess = "success"
	ResultError   = "error"

	TradeShopBuy     = "shop_buy"
	TradeMarketBuy   = "market_buy"
	TradeMarketList  = "market_list"
	TradeCatalogSell = "catalog_sell"
	TradeWithdraw    = "withdraw"
)
