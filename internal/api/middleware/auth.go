package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-ReservationEngine/internal/api/handlers"
)

// HeaderAdminKey заголовок с ключом администратора
const HeaderAdminKey = "X-Admin-Key"

const msgUnauthorized = "требуется ключ администратора"

// AdminAuth пропускает только запросы с верным X-Admin-Key.
// Пустой ключ в конфигурации закрывает административные эндпоинты полностью.
func AdminAuth(apiKey string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(HeaderAdminKey)
			if apiKey == "" || provided == "" ||
				subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.Warn("AdminAuth: rejected %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
