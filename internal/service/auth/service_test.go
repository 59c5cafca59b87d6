package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret    = "test-secret-key-for-jwt"
	testAccessExp = "1h"
)

type fakeUserRepo struct {
	users map[string]user.User
	err   error
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	if r.err != nil {
		return user.User{}, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()
	cat := "cat-ops"
	repo := &fakeUserRepo{users: map[string]user.User{
		"budi":   {ID: "user-1", Name: "Budi", Username: "budi", PasswordHash: hash(t, "password123"), Role: user.RoleEmployee, CategoryID: &cat, IsActive: true},
		"keluar": {ID: "user-2", Name: "Keluar", Username: "keluar", PasswordHash: hash(t, "password123"), Role: user.RoleEmployee, IsActive: false},
		"nopass": {ID: "user-3", Name: "No Pass", Username: "nopass", Role: user.RoleEmployee, IsActive: true},
	}}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: "  Budi ", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotZero(t, resp.AccessTokenExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "employee", resp.User.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	userID, ok := token.Get(jwt.ClaimUserID)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr error
	}{
		{"unknown user", auth.LoginRequest{Username: "ghost", Password: "password123"}, auth.ErrInvalidCredentials},
		{"wrong password", auth.LoginRequest{Username: "budi", Password: "wrong-password"}, auth.ErrInvalidCredentials},
		{"no password set", auth.LoginRequest{Username: "nopass", Password: "password123"}, auth.ErrInvalidCredentials},
		{"inactive user", auth.LoginRequest{Username: "keluar", Password: "password123"}, user.ErrUserInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "username")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := &fakeUserRepo{err: errors.New("connection reset")}
	svc := NewAuthService(repo, jwt.NewJWTService(testSecret, testAccessExp))

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "budi", Password: "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
