package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/davinra/donasi-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email, phone string, passwordHash, passwordSalt []byte) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
}
