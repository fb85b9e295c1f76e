package domain

import (
	"time"

	"github.com/google/uuid"
)

type DonationStatus string

const (
	DonationPending DonationStatus = "pending"
	DonationSuccess DonationStatus = "success"
	DonationFailed  DonationStatus = "failed"
)

type Donation struct {
	ID        int64          `db:"id" json:"id"`
	UserID    uuid.UUID      `db:"user_id" json:"user_id"`
	Campaign  string         `db:"campaign" json:"campaign"`
	Amount    int64          `db:"amount" json:"amount"`
	Status    DonationStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
