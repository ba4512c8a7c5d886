package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
)

const defaultBurst = 5

// RateLimiter ограничивает частоту запросов с одного IP.
// Применяется к эндпоинтам отмены, чтобы перебор credential был дорогим.
type RateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
	logger   Logger
}

// NewRateLimiter создает ограничитель; rps <= 0 отключает ограничение
func NewRateLimiter(rps float64, burst int, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = defaultBurst
	}
	return &RateLimiter{
		rps:    rate.Limit(rps),
		burst:  burst,
		logger: logger,
	}
}

// Middleware отвечает 429, если лимит клиента исчерпан
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := clientKey(r)
		if !l.getLimiter(key).Allow() {
			l.logger.Warn("RateLimit: limit exceeded: client=%s, path=%s", key, r.URL.Path)
			handlers.RespondTooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
