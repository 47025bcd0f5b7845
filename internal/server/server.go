package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmvale/cryptofarm/internal/database"
	"github.com/farmvale/cryptofarm/internal/farm"
	"github.com/farmvale/cryptofarm/internal/handler"
	"github.com/farmvale/cryptofarm/internal/inventory"
	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/market"
	"github.com/farmvale/cryptofarm/internal/metrics"
	"github.com/farmvale/cryptofarm/internal/repository"
	"github.com/farmvale/cryptofarm/internal/shop"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool,
	accounts repository.Account, ledgerSvc ledger.Service, inventorySvc inventory.Service,
	farmSvc farm.Service, marketSvc market.Service, shopSvc shop.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack, outermost to innermost
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(APIKeyMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	accountHandler := handler.NewAccountHandler(ledgerSvc)
	inventoryHandler := handler.NewInventoryHandler(inventorySvc)
	farmHandler := handler.NewFarmHandler(farmSvc)
	marketHandler := handler.NewMarketHandler(marketSvc)
	shopHandler := handler.NewShopHandler(shopSvc)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Registration issues the session token, so it stays outside the
		// session middleware
		r.Post("/account/register", accountHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(accounts))

			r.Route("/account", func(r chi.Router) {
				r.Get("/", accountHandler.Get)
				r.Post("/daily", accountHandler.Daily)
			})

			r.Route("/shop", func(r chi.Router) {
				r.Get("/", shopHandler.Browse)
				r.Post("/buy", shopHandler.Buy)
			})

			r.Get("/inventory", inventoryHandler.Get)

			r.Route("/farm", func(r chi.Router) {
				r.Post("/claim", farmHandler.Claim)
				r.Post("/level-up", farmHandler.LevelUp)
			})

			r.Route("/marketplace", func(r chi.Router) {
				r.Get("/", marketHandler.Browse)
				r.Post("/list", marketHandler.List)
				r.Post("/buy", marketHandler.Buy)
				r.Post("/sell", marketHandler.Sell)
				r.Post("/withdraw", marketHandler.Withdraw)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
