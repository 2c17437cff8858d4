package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash, role string, dateOfBirth *time.Time) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SetActive(ctx context.Context, id int, active bool) error
}
