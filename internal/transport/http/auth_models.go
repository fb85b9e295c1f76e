package http

import (
	"time"

	"github.com/davinra/donasi-api/internal/domain"
)

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6,max=50" example:"rahasia123"`
}

// RegisterRequest carries registration fields. It deliberately has no
// role field; every account is created with the 'user' role.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"Dewi Lestari"`
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6,max=50" example:"rahasia123"`
	Phone    string `json:"phone" validate:"required" example:"+62811234567"`
}

// ForgotPasswordRequest asks for a reset link to be mailed.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"user@example.com"`
}

// ResetPasswordRequest confirms a reset with the mailed token.
type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Token    string `json:"token" validate:"required" example:"2f7a..."`
	Password string `json:"password" validate:"required,min=6,max=50" example:"rahasia456"`
}

// TokenData wraps the bearer token issued on login.
type TokenData struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// AuthUser is the sanitized user representation; it never carries
// password material.
type AuthUser struct {
	ID        string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Name      string    `json:"name" example:"Dewi Lestari"`
	Email     string    `json:"email" example:"user@example.com"`
	Phone     string    `json:"phone" example:"+62811234567"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-01T12:00:00Z"`
}

// ProfileUser is AuthUser plus the request-scoped donation total.
type ProfileUser struct {
	AuthUser
	TotalDonation int64 `json:"total_donation" example:"150000"`
}

func toAuthUser(u *domain.User) AuthUser {
	return AuthUser{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProfileUser(u *domain.User) ProfileUser {
	return ProfileUser{
		AuthUser:      toAuthUser(u),
		TotalDonation: u.TotalDonation,
	}
}
