package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token. It expects
// jwtauth.Verifier to have run first.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		userID, ok := claims[jwt.ClaimUserID].(string)
		if !ok || userID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
