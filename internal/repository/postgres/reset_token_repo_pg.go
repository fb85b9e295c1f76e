package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/davinra/donasi-api/internal/domain"
)

type ResetTokenRepository struct {
	db *sqlx.DB
}

func NewResetTokenRepo(db *sqlx.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

// Create inserts a pending token only when no other pending token for the
// user has been touched at or after pendingSince. Guard and insert are one
// statement so concurrent requests cannot both slip past the throttle;
// when the guard rejects, StructScan reports sql.ErrNoRows.
func (r *ResetTokenRepository) Create(ctx context.Context, userID uuid.UUID, token, link string, pendingSince time.Time) (*domain.ResetToken, error) {
	const query = `
        INSERT INTO reset_token (user_id, token, link, status)
        SELECT $1, $2, $3, 0
        WHERE NOT EXISTS (
            SELECT 1 FROM reset_token
            WHERE user_id = $1 AND status = 0 AND updated_at >= $4
        )
        RETURNING id, user_id, token, link, status, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, userID, token, link, pendingSince)
	var reset domain.ResetToken
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetTokenRepository) FindLatestPendingByUser(ctx context.Context, userID uuid.UUID) (*domain.ResetToken, error) {
	const query = `
        SELECT id, user_id, token, link, status, created_at, updated_at
        FROM reset_token
        WHERE user_id = $1 AND status = 0
        ORDER BY updated_at DESC
        LIMIT 1
    `
	var reset domain.ResetToken
	if err := r.db.GetContext(ctx, &reset, query, userID); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	const query = `
        SELECT id, user_id, token, link, status, created_at, updated_at
        FROM reset_token
        WHERE token = $1
    `
	var reset domain.ResetToken
	if err := r.db.GetContext(ctx, &reset, query, token); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *ResetTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	const query = `
        UPDATE reset_token
        SET status = 1,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
