package jwt

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claim keys carried by access tokens.
const (
	ClaimUserID   = "user_id"
	ClaimUsername = "username"
	ClaimRole     = "role"
	ClaimType     = "type"
)

type Service interface {
	GenerateAccessToken(userID string, username string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(userID string, username string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	issuedAt := j.now()
	expiresAt = issuedAt.Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimUserID:   userID,
		ClaimUsername: username,
		ClaimRole:     string(role),
		ClaimType:     "access",
		"iat":         issuedAt.Unix(),
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}
