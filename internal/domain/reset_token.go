package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResetStatus int

const (
	ResetPending ResetStatus = 0
	ResetUsed    ResetStatus = 1
)

// ResetToken is one password-reset request. Rows are never deleted; the
// only status transition is pending -> used, exactly once.
type ResetToken struct {
	ID        int64       `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	Token     string      `db:"token" json:"-"`
	Link      string      `db:"link" json:"-"`
	Status    ResetStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}
