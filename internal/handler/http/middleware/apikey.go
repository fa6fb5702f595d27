package middleware

import (
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/apikey"
	"github.com/collable/pointage-backend/internal/handler/http/response"
)

// APIKeyRequired guards the external read-only API with the X-API-Key header.
func APIKeyRequired(keys apikey.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if _, err := keys.Verify(r.Context(), key); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
