package repository

import (
	"context"
	"database/sql"
	"errors"
)

// TokenRepo persists and resolves auth tokens (single 'token_hash' column).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts an auth token hash row bound to a user.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO auth_tokens (user_id, token_hash) VALUES (?,?)",
		userID, tokenHash)
	return err
}

// Resolve returns the user ID bound to a token hash. ErrTokenNotFound is
// returned when no such token exists.
func (r *TokenRepo) Resolve(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id FROM auth_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}
