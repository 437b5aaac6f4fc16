package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrRefreshReuse is returned by ValidateRefresh when the presented
// token exists but was already rotated away. Refresh tokens are single
// use; seeing one twice means it was copied, so callers should revoke
// every session the account has.
var ErrRefreshReuse = errors.New("refresh token already used")

// TokenRepo owns the refresh_tokens table, the only session state that
// outlives an access token. Rows hold the SHA-256 hash of the token,
// never the token itself, and are revoked rather than deleted so reuse
// of a rotated token stays detectable.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a newly issued refresh token hash with its expiry.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves a token hash to its owner. Unknown and
// expired hashes answer sql.ErrNoRows; a revoked hash answers
// ErrRefreshReuse together with the owner so the caller can revoke the
// account's remaining sessions.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return userID, ErrRefreshReuse
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return userID, nil
}

// RevokeByHash retires one token, the normal rotation and logout path.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser retires every live token an account holds, used when
// a rotated token resurfaces.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
