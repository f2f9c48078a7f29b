package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(t *testing.T, perPeriod int) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	r.Use(RateLimit(RateLimitConfig{
		RequestsPerPeriod: perPeriod,
		Period:            time.Minute,
	}))
	r.HandleFunc("/recurso", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

func solicitudDesde(router *mux.Router, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitCortaAlSuperarElLimite(t *testing.T) {
	router := newLimitedRouter(t, 2)

	assert.Equal(t, http.StatusOK, solicitudDesde(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, solicitudDesde(router, "10.0.0.1").Code)

	rec := solicitudDesde(router, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "LIMITE_EXCEDIDO")
}

func TestRateLimitSeparaClientesPorRealIP(t *testing.T) {
	router := newLimitedRouter(t, 1)

	assert.Equal(t, http.StatusOK, solicitudDesde(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, solicitudDesde(router, "10.0.0.1").Code)

	// the configured real-IP header keys the counter, not RemoteAddr
	assert.Equal(t, http.StatusOK, solicitudDesde(router, "10.0.0.2").Code)
}
