package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
)

type observation struct {
	method string
	route  string
	status int
}

type recordingMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *recordingMetrics) ObserveHTTP(method, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method, route, status})
}

func okHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	metrics := &recordingMetrics{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(metrics))
	router.HandleFunc("/api/v1/cancellations/{token}", okHandler(http.StatusNotFound)).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cancellations/secret-token", nil))

	require.Len(t, metrics.obs, 1)
	assert.Equal(t, observation{http.MethodGet, "/api/v1/cancellations/{token}", http.StatusNotFound}, metrics.obs[0])
}

func TestMetricsMiddleware_WithoutRoute(t *testing.T) {
	metrics := &recordingMetrics{}
	h := MetricsMiddleware(metrics)(okHandler(http.StatusOK))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/whatever", nil))

	require.Len(t, metrics.obs, 1)
	assert.Equal(t, routeUnmatched, metrics.obs[0].route)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestID(r.Context())
	}))

	t.Run("Generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})

	t.Run("Propagated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, "req-42")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
	})

	t.Run("TooLongReplaced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(HeaderRequestID, string(bytes.Repeat([]byte("x"), maxRequestIDLength+1)))
		h.ServeHTTP(httptest.NewRecorder(), r)

		assert.Len(t, seen, 36)
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, logger.Nop())
	h := limiter.Middleware(okHandler(http.StatusOK))

	call := func(remote string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/cancellations/x", nil)
		r.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"), "same host, different port")
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"), "other clients are unaffected")
}

func TestRateLimiter_Disabled(t *testing.T) {
	h := NewRateLimiter(0, 1, logger.Nop()).Middleware(okHandler(http.StatusOK))

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{"valid key", "s3cret", "s3cret", http.StatusOK},
		{"wrong key", "s3cret", "guess", http.StatusUnauthorized},
		{"missing key", "s3cret", "", http.StatusUnauthorized},
		{"admin disabled", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AdminAuth(tt.configured, logger.Nop())(okHandler(http.StatusOK))

			r := httptest.NewRequest(http.MethodPut, "/api/v1/admin/business-hours", nil)
			if tt.provided != "" {
				r.Header.Set(HeaderAdminKey, tt.provided)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestLogging_DoesNotLogRawPath(t *testing.T) {
	var buf bytes.Buffer
	router := mux.NewRouter()
	router.Use(RequestID, Logging(logger.NewWriter(&buf, "info")))
	router.HandleFunc("/api/v1/cancellations/{token}", okHandler(http.StatusOK))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cancellations/very-secret", nil))

	out := buf.String()
	assert.Contains(t, out, "/api/v1/cancellations/{token}")
	assert.NotContains(t, out, "very-secret")
	assert.Contains(t, out, "request_id=")
}
