package user

import (
	"context"
)

// UserRepository is read-only: accounts are managed outside this service.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
