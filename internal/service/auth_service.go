package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/davinra/donasi-api/internal/domain"
	"github.com/davinra/donasi-api/internal/repository/ports"
	"github.com/davinra/donasi-api/internal/util"
)

var (
	ErrInvalidCredentials   = errors.New("login credentials invalid")
	ErrEmailTaken           = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrTooManyResetRequests = errors.New("too many requests, please wait")
	ErrResetTokenInvalid    = errors.New("invalid token")
	ErrResetTokenUsed       = errors.New("reset token already used")
	ErrResetTokenStale      = errors.New("reset token expired")
	ErrTokenSigning         = errors.New("failed to create token")
	ErrUnauthenticated      = errors.New("authentication required")
)

// PasswordResetSender delivers the reset link out-of-band. The link is
// never returned to the API caller.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

type AuthService struct {
	users     ports.UserRepository
	resets    ports.ResetTokenRepository
	donations ports.DonationRepository
	sessions  ports.SessionRepository
	jwt       *util.JWTManager
	mailer    PasswordResetSender

	resetThrottle time.Duration
	resetTokenTTL time.Duration
	sessionTTL    time.Duration

	now func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	resets ports.ResetTokenRepository,
	donations ports.DonationRepository,
	sessions ports.SessionRepository,
	jwtManager *util.JWTManager,
	mailer PasswordResetSender,
	resetThrottle, resetTokenTTL, sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		resets:        resets,
		donations:     donations,
		sessions:      sessions,
		jwt:           jwtManager,
		mailer:        mailer,
		resetThrottle: resetThrottle,
		resetTokenTTL: resetTokenTTL,
		sessionTTL:    sessionTTL,
		now:           time.Now,
	}
}

// Login verifies the credentials against the stored digest and mints a
// bearer token. One attempt per call, no retries.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, _, err := s.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenSigning, err)
	}
	return token, nil
}

// Register creates a new account. The role is always 'user'; the request
// type has no role field, so a client-supplied role cannot reach here.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, fmt.Errorf("derive password: %w", err)
	}
	user, err := s.users.Create(ctx, name, email, phone, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// RequestPasswordReset mints a reset token for the account unless a
// pending token was issued within the throttle window. The throttle
// consults the wall-clock delta against the latest pending token for this
// user only, so requests for other accounts never reset the clock.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	now := s.now()
	latest, err := s.resets.FindLatestPendingByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("find pending reset: %w", err)
	}
	if latest != nil && now.Sub(latest.UpdatedAt) < s.resetThrottle {
		return ErrTooManyResetRequests
	}

	token, err := util.GenerateOpaqueToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	link := "forgot-password/" + token

	reset, err := s.resets.Create(ctx, user.ID, token, link, now.Add(-s.resetThrottle))
	if err != nil {
		// The guarded insert lost a race with a concurrent request.
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTooManyResetRequests
		}
		return fmt.Errorf("create reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		// An undeliverable token must not hold the throttle window open.
		_ = s.resets.MarkUsed(ctx, reset.ID)
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ConfirmPasswordReset consumes a reset token and overwrites the account
// digest. The token must be pending, fresh, and owned by the account the
// supplied email resolves to.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, token, newPassword string) error {
	reset, err := s.resets.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("find reset token: %w", err)
	}
	if reset.Status != domain.ResetPending {
		return ErrResetTokenUsed
	}
	if s.now().Sub(reset.CreatedAt) > s.resetTokenTTL {
		return ErrResetTokenStale
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if reset.UserID != user.ID {
		return ErrResetTokenInvalid
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return fmt.Errorf("derive password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.resets.MarkUsed(ctx, reset.ID); err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	return nil
}

// Profile loads the account and attaches the request-scoped donation
// total (successful donations only).
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	total, err := s.donations.SumAmountByUserAndStatus(ctx, user.ID, domain.DonationSuccess)
	if err != nil {
		return nil, fmt.Errorf("sum donations: %w", err)
	}
	user.TotalDonation = total
	return user, nil
}

// Authenticate resolves a bearer token to its account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// WebLogin is the session-cookie path used by the server-rendered
// dashboard. It verifies credentials and opens a session row.
func (s *AuthService) WebLogin(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, err := util.GenerateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	session, err := s.sessions.CreateSession(ctx, user.ID, token, s.now().Add(s.sessionTTL))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// WebSession resolves a session cookie to its account.
func (s *AuthService) WebSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.FindActiveSession(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) WebLogout(ctx context.Context, token string) error {
	return s.sessions.DeactivateSession(ctx, token)
}

// DonationHistory feeds the dashboard with the user's latest donations.
func (s *AuthService) DonationHistory(ctx context.Context, userID uuid.UUID) ([]domain.Donation, error) {
	return s.donations.ListByUser(ctx, userID, 10)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
