package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type recordedRequest struct {
	method string
	route  string
	status int
}

// captureCollector はHTTPリクエストの記録だけを保持するテスト用コレクター。
type captureCollector struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (c *captureCollector) RecordGeneration(string, time.Duration) {}
func (c *captureCollector) RecordReload(string) {}
func (c *captureCollector) RecordDataset(uint64, map[string]int) {}

func (c *captureCollector) RecordHTTPRequest(method, route string, statusCode int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, recordedRequest{method: method, route: route, status: statusCode})
}

func TestMetricsMiddleware_RecordsRoutePattern(t *testing.T) {
	collector := &captureCollector{}

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(collector))
	r.Get("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/matches/42", nil))

	if len(collector.requests) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(collector.requests))
	}
	got := collector.requests[0]
	want := recordedRequest{method: http.MethodGet, route: "/matches/{id}", status: http.StatusNotFound}
	if got != want {
		t.Errorf("recorded = %+v, want %+v", got, want)
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	collector := &captureCollector{}

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(collector))
	r.Get("/teams", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if len(collector.requests) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(collector.requests))
	}
	if got := collector.requests[0].route; got != "unmatched" {
		t.Errorf("route = %q, want %q", got, "unmatched")
	}
	if got := collector.requests[0].status; got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestMetricsMiddleware_ImplicitOK(t *testing.T) {
	collector := &captureCollector{}

	handler := NewMetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/reload", nil))

	if len(collector.requests) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(collector.requests))
	}
	if got := collector.requests[0]; got.status != http.StatusOK || got.route != "unmatched" {
		t.Errorf("recorded = %+v, want status 200 with unmatched route", got)
	}
}
