package middleware

import (
	"net/http"
	"time"
)

// Logging пишет строку на каждый запрос вместе с идентификатором запроса.
// Путь логируется по шаблону маршрута, чтобы токены отмены не попадали в логи.
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			requestID, _ := GetRequestID(r.Context())
			logger.Info("HTTP: method=%s, route=%s, status=%d, duration=%s, request_id=%s",
				r.Method, routeTemplate(r), recorder.status, time.Since(start), requestID)
		})
	}
}
