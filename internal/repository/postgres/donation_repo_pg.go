package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/davinra/donasi-api/internal/domain"
)

type DonationRepository struct {
	db *sqlx.DB
}

func NewDonationRepo(db *sqlx.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) SumAmountByUserAndStatus(ctx context.Context, userID uuid.UUID, status domain.DonationStatus) (int64, error) {
	const query = `
        SELECT COALESCE(SUM(amount), 0)
        FROM donation
        WHERE user_id = $1 AND status = $2
    `
	var total int64
	if err := r.db.GetContext(ctx, &total, query, userID, status); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *DonationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Donation, error) {
	const query = `
        SELECT id, user_id, campaign, amount, status, created_at
        FROM donation
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	var donations []domain.Donation
	if err := r.db.SelectContext(ctx, &donations, query, userID, limit); err != nil {
		return nil, err
	}
	return donations, nil
}
