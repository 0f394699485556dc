package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	// CreateIfAbsent looks the email up and inserts only when no row holds it,
	// returning ErrDuplicateEmail otherwise.
	CreateIfAbsent(ctx context.Context, u NewUser) (User, error)
}
