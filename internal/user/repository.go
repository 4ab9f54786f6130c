package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidRole        = errors.New("unknown role")
)

// Repository defines persistence operations for users. List filters by role
// when role is non-empty.
type Repository interface {
	List(ctx context.Context, role string) ([]User, error)
	GetByID(ctx context.Context, id int) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id int, u User) (User, error)
	Delete(ctx context.Context, id int) error
}
