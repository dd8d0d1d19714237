package dto

import "time"

// LoginRequest body para POST /api/Auth/login.
type LoginRequest struct {
	PersonnelCode string `json:"personnel_code" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// LoginResponse token emitido más los datos básicos del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest body para POST /api/Auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
