package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/davinra/donasi-api/internal/domain"
)

type DonationRepository interface {
	SumAmountByUserAndStatus(ctx context.Context, userID uuid.UUID, status domain.DonationStatus) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Donation, error)
}
