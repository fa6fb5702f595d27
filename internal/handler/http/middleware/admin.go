package middleware

import (
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/auth"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !agent.Role(role).IsAdmin() {
			response.HandleError(w, auth.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
