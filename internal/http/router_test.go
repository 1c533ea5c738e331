package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"motohub/internal/modules/pricing"
	"motohub/internal/modules/ratelimit"
)

func newTestServer(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := ratelimit.NewMemoryStore(ratelimit.Policy{Requests: limit, Window: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(store.Close)

	table := pricing.MustCityTable(pricing.DefaultCityProfiles(), pricing.DefaultCitySlug)
	return NewServer(ServerDeps{
		Pricing:        pricing.NewService(table, nil),
		RateLimit:      ratelimit.NewService(store, nil),
		AllowedOrigins: []string{"*"},
	}).Routes()
}

func TestRoutes_Health(t *testing.T) {
	r := newTestServer(t, 5)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("health = %d %q", w.Code, w.Body.String())
	}
}

func TestRoutes_RateLimitOnQuotesOnly(t *testing.T) {
	r := newTestServer(t, 2)
	body := `{"bike":{"priceInr":100000,"engineCc":110},"city":"pune"}`

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pricing/on-road", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/pricing/cities", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("cities request %d = %d", i+1, w.Code)
		}
	}
}

func TestRoutes_Preflight(t *testing.T) {
	r := newTestServer(t, 5)
	req := httptest.NewRequest(http.MethodOptions, "/api/pricing/on-road", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight = %d %v", w.Code, w.Header())
	}
}
