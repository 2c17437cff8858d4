package user

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrActiveStateNoop = errors.New("user already in requested state")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, username, email, password_hash, role, date_of_birth, is_active, created_at`

func (r *repository) Create(ctx context.Context, username, email, passwordHash, role string, dateOfBirth *time.Time) (*User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, username, email, passwordHash, role, dateOfBirth)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE users SET is_active = $2 WHERE id = $1 AND is_active <> $2`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrActiveStateNoop
	}

	return nil
}
