package dto

import (
	"time"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

// LoginRequest payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returned on successful login.
type LoginResponse struct {
	Token     string      `json:"token"`
	Role      domain.Role `json:"role"`
	Username  string      `json:"username"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// PasswordChangeRequest payload for POST /api/password/change.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
