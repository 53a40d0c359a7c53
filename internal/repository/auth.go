// Package repository provides persistence implementations for users and blog
// posts over database/sql. Queries use positional $n placeholders, which both
// the PostgreSQL and SQLite drivers accept.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/postboard/postboard/internal/models"
)

// AuthRepository implements user persistence.
type AuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewAuthRepository creates a new AuthRepository with the given database connection.
func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

// FindUser loads a user by id.
// It returns models.ErrNotFound if no such user exists.
func (r *AuthRepository) FindUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT user_id, password, name FROM users WHERE user_id = $1`,
		id,
	).Scan(&u.ID, &u.PasswordHash, &u.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, queryFailure("find user", err)
	}
	return &u, nil
}

// InsertUser stores a new user.
// The ON CONFLICT DO NOTHING clause lets the primary key decide uniqueness:
// when no row is inserted, models.ErrDuplicateUsername is returned.
func (r *AuthRepository) InsertUser(ctx context.Context, u models.User) error {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (user_id, password, name) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		u.ID, u.PasswordHash, u.DisplayName,
	)
	if err != nil {
		return queryFailure("insert user", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return queryFailure("insert user", err)
	}
	if n == 0 {
		return models.ErrDuplicateUsername
	}
	return nil
}

// queryFailure tags a driver error with models.ErrQueryFailure while keeping
// the original error reachable through errors.Is / errors.As.
func queryFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrQueryFailure, err)
}
