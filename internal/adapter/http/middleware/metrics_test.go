package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gotill/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(m).Wrap)
	r.Post("/api/v1/tills/{id}/close", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tills/01ABC/close", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodPost, "/api/v1/tills/{id}/close", "409"))
	if got != 1 {
		t.Fatalf("expected 1 request recorded, got %v", got)
	}
	if n := testutil.CollectAndCount(m.HTTPDuration); n != 1 {
		t.Fatalf("expected 1 duration series, got %d", n)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/tills/01ABC", "/api/v1/tills/:id"},
		{"/api/v1/tills/01ABC/withdrawals", "/api/v1/tills/:id/withdrawals"},
		{"/api/v1/points-of-sale/pos-1/open", "/api/v1/points-of-sale/:id/open"},
		{"/api/v1/tills/", "/api/v1/tills/"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
