package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RouterHaus/routerhaus/internal/testutil"
)

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func newServer(t *testing.T) *Server {
	t.Helper()
	return New(":0", testutil.Logger(), prometheus.NewRegistry())
}

func TestHealth(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-RouterHaus-Version"); got == "" {
		t.Error("missing version header")
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "routerhaus" {
		t.Errorf("health body = %v", body)
	}
}

func TestMount(t *testing.T) {
	s := newServer(t)
	s.Mount(pingRegistrar{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Fatalf("mounted route status = %d, want 418", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "routerhaus_test_total"})
	reg.MustRegister(c)
	c.Inc()

	s := New(":0", testutil.Logger(), reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "routerhaus_test_total") {
		t.Errorf("metrics body missing counter:\n%s", body)
	}
}
