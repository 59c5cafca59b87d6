package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims[jwt.ClaimRole].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
