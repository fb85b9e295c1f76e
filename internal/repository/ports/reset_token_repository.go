package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/davinra/donasi-api/internal/domain"
)

type ResetTokenRepository interface {
	// Create inserts a pending reset token unless another pending token
	// for the same user has been touched at or after pendingSince. The
	// guard and the insert run as one statement, so two concurrent
	// requests cannot both pass the throttle. A rejected insert surfaces
	// as sql.ErrNoRows.
	Create(ctx context.Context, userID uuid.UUID, token, link string, pendingSince time.Time) (*domain.ResetToken, error)
	FindLatestPendingByUser(ctx context.Context, userID uuid.UUID) (*domain.ResetToken, error)
	FindByToken(ctx context.Context, token string) (*domain.ResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
}
