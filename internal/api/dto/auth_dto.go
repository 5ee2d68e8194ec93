package dto

import "github.com/spec-kit/ticket-admin/internal/domain"

// RegisterRequest payload for new accounts. Everything beyond email and
// password is optional.
type RegisterRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	EstablishmentName string `json:"establishmentName"`
	CpfCnpj           string `json:"cpfCnpj"`
	CompanyName       string `json:"companyName"`
	TradeName         string `json:"tradeName"`
	Phone             string `json:"phone"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the response shape shared by register and login.
// ExpiresIn is a fixed human-readable label, not the remaining validity.
type AuthResponse struct {
	Token     string            `json:"token"`
	User      domain.PublicUser `json:"user"`
	ExpiresIn string            `json:"expiresIn"`
}

// VerifyResponse wraps the re-fetched profile.
type VerifyResponse struct {
	User domain.PublicUser `json:"user"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest payload for profile edits.
type UpdateProfileRequest struct {
	FullName          string `json:"fullName"`
	EstablishmentName string `json:"establishmentName"`
	CpfCnpj           string `json:"cpfCnpj"`
	CompanyName       string `json:"companyName"`
	TradeName         string `json:"tradeName"`
	Phone             string `json:"phone"`
}
