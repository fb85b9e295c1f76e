package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davinra/donasi-api/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes wires the API surface. The authorization policy is
// explicit per route: only the profile endpoint requires a bearer token.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.POST("/auth/register", h.Register)
	g.POST("/auth/forgot-password", h.ForgotPassword)
	g.POST("/auth/reset-password", h.ResetPassword)
	g.GET("/auth/profile", h.Profile, RequireAuth(h.auth))
}

// Login authenticates with email and password.
// @Summary Login
// @Description Verify credentials and issue a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} Envelope
// @Failure 400,500 {object} Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", map[string]string{"body": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", fieldErrors(err))
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return respondFailed(c, http.StatusBadRequest, "login credentials invalid")
	case errors.Is(err, service.ErrTokenSigning):
		return respondFailed(c, http.StatusInternalServerError, "failed to create token")
	case err != nil:
		return respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
	return respondSuccess(c, http.StatusOK, "login success", TokenData{Token: token})
}

// Register creates a new account with the fixed 'user' role.
// @Summary Register
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration fields"
// @Success 200 {object} Envelope
// @Failure 400,500 {object} Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", map[string]string{"body": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", fieldErrors(err))
	}

	user, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Phone, req.Password)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return respondError(c, http.StatusBadRequest, "error validation", map[string]string{"email": "the email has already been taken"})
	case err != nil:
		return respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
	return respondSuccess(c, http.StatusOK, "user successfully created", toAuthUser(user))
}

// ForgotPassword mints a reset token and mails the link out-of-band.
// @Summary Request password reset
// @Description Send a password reset link to the user's email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} Envelope
// @Failure 400,404,500 {object} Envelope
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", map[string]string{"body": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", fieldErrors(err))
	}

	err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return respondError(c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, service.ErrTooManyResetRequests):
		return respondFailed(c, http.StatusBadRequest, "too many requests, please wait")
	case err != nil:
		return respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
	return respondSuccess(c, http.StatusOK, "reset password link has been sent to email", nil)
}

// ResetPassword consumes a reset token and changes the password.
// @Summary Confirm password reset
// @Description Change the password using a mailed reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset confirmation"
// @Success 200 {object} Envelope
// @Failure 400,401,404,500 {object} Envelope
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", map[string]string{"body": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "error validation", fieldErrors(err))
	}

	err := h.auth.ConfirmPasswordReset(c.Request().Context(), req.Email, req.Token, req.Password)
	switch {
	case errors.Is(err, service.ErrResetTokenInvalid),
		errors.Is(err, service.ErrResetTokenUsed),
		errors.Is(err, service.ErrResetTokenStale):
		return respondFailed(c, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, service.ErrUserNotFound):
		return respondError(c, http.StatusNotFound, "user not found", nil)
	case err != nil:
		return respondError(c, http.StatusInternalServerError, "internal server error", nil)
	}
	return respondSuccess(c, http.StatusOK, "password successfully changed", nil)
}

// Profile returns the authenticated user with the donation total.
// @Summary Get profile
// @Description Fetch the authenticated user's profile and donation total
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401,500 {object} Envelope
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return respondFailed(c, http.StatusUnauthorized, "authentication required")
	}
	profile, err := h.auth.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "cannot fetch user data", nil)
	}
	return respondSuccess(c, http.StatusOK, "user successfully fetched", toProfileUser(profile))
}
