package middleware

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// UserID returns the authenticated user's id, or "" outside AuthRequired.
func UserID(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	id, _ := claims[jwt.ClaimUserID].(string)
	return id
}
