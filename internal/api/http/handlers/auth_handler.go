package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-admin/internal/api/dto"
	"github.com/spec-kit/ticket-admin/internal/auth"
	"github.com/spec-kit/ticket-admin/internal/service"
	apperrors "github.com/spec-kit/ticket-admin/pkg/util"
)

// AuthHandler exposes the session endpoints of the dashboard API.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Register(c.Context(), service.RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		FullName:          req.FullName,
		EstablishmentName: req.EstablishmentName,
		CpfCnpj:           req.CpfCnpj,
		CompanyName:       req.CompanyName,
		TradeName:         req.TradeName,
		Phone:             req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Token:     result.Token,
		User:      result.User,
		ExpiresIn: auth.ExpiresInLabel,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Token:     result.Token,
		User:      result.User,
		ExpiresIn: auth.ExpiresInLabel,
	})
}

// Verify handles GET /auth/verify. Token handling lives in the service so
// the endpoint can distinguish a missing token (401) from a decoded token
// whose subject no longer exists (404).
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token, _ := auth.BearerToken(c)

	user, err := h.auth.Verify(c.Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(dto.VerifyResponse{User: *user})
}

// ChangePassword handles POST /auth/password/change (bearer protected).
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// UpdateProfile handles PUT /auth/profile (bearer protected).
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.User.ID, service.ProfileInput{
		FullName:          req.FullName,
		EstablishmentName: req.EstablishmentName,
		CpfCnpj:           req.CpfCnpj,
		CompanyName:       req.CompanyName,
		TradeName:         req.TradeName,
		Phone:             req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.VerifyResponse{User: *user})
}
