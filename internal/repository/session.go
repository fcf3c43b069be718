package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository stores refresh-token hashes. Raw tokens never reach the
// database.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) StoreRefreshToken(ctx context.Context, playerID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (player_id, token_hash, expires_at) VALUES ($1, $2, $3)`,
		playerID, tokenHash, expiresAt)
	return err
}

// ValidateRefreshToken resolves a token hash to its player. Revoked and
// expired tokens do not match; the caller sees pgx.ErrNoRows.
func (r *SessionRepository) ValidateRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	var playerID string
	err := r.pool.QueryRow(ctx, `
		SELECT player_id FROM refresh_tokens
		WHERE token_hash = $1 AND revoked = FALSE AND expires_at > NOW()
	`, tokenHash).Scan(&playerID)
	return playerID, err
}

func (r *SessionRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token_hash = $1`, tokenHash)
	return err
}

// RevokeAllForPlayer invalidates every outstanding token, e.g. on a ban.
func (r *SessionRepository) RevokeAllForPlayer(ctx context.Context, playerID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE player_id = $1`, playerID)
	return err
}

// CleanupExpired deletes dead token rows and reports how many went.
func (r *SessionRepository) CleanupExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < NOW() OR revoked = TRUE`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
