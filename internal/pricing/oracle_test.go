package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/farmvale/cryptofarm/internal/domain"
)

func TestHTTPOracle_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/price", r.URL.Path)
		assert.Equal(t, "BTC", r.URL.Query().Get("fsym"))
		assert.Equal(t, "EUR", r.URL.Query().Get("tsyms"))
		w.Write([]byte(`{"EUR": 23456.78}`))
	}))
	defer srv.Close()

	oracle := NewHTTPOracle(srv.URL, "EUR", time.Second)
	rate, err := oracle.Quote(context.Background(), "BTC")

	assert.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("23456.78")))
}

func TestHTTPOracle_UnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"Error","Message":"no data for symbol"}`))
	}))
	defer srv.Close()

	oracle := NewHTTPOracle(srv.URL, "EUR", time.Second)
	_, err := oracle.Quote(context.Background(), "NOPE")

	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestHTTPOracle_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	oracle := NewHTTPOracle(srv.URL, "EUR", time.Second)
	_, err := oracle.Quote(context.Background(), "BTC")

	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}

func TestHTTPOracle_NonPositiveRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"EUR": 0}`))
	}))
	defer srv.Close()

	oracle := NewHTTPOracle(srv.URL, "EUR", time.Second)
	_, err := oracle.Quote(context.Background(), "BTC")

	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}

func TestHTTPOracle_EmptyCode(t *testing.T) {
	oracle := NewHTTPOracle("http://localhost:0", "EUR", time.Second)
	_, err := oracle.Quote(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestHTTPOracle_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"EUR": 1}`))
	}))
	defer srv.Close()

	oracle := NewHTTPOracle(srv.URL, "EUR", 20*time.Millisecond)
	_, err := oracle.Quote(context.Background(), "BTC")

	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}
