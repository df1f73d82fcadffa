package dto

import "github.com/Thiago-2004/ateneo-padel-reservas/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the signed identity token plus the user it identifies.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse always reports ok, whether or not the email exists.
// DevResetLink is only populated when no mail transport is configured.
type ForgotPasswordResponse struct {
	OK           bool   `json:"ok"`
	DevResetLink string `json:"dev_reset_link,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,min=10"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
