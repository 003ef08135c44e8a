package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser backs the dashboard login. Passwords are stored as bcrypt hashes.
type AdminUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	LastLoginAt  NullTime  `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AdminLoginResponse is returned after a successful dashboard login
type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int       `json:"expires_in_seconds"`
	AdminID     uuid.UUID `json:"admin_id"`
	Email       string    `json:"email"`
}
