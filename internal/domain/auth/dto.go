package auth

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.ToLower(strings.TrimSpace(r.Username))

	// Username
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, numbers, dots, underscores or hyphens",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken          string       `json:"access_token"`
	AccessTokenExpiresIn int64        `json:"access_token_expires_in"`
	User                 UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	CategoryID   *string `json:"category_id,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}
