package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/google/uuid"
)

// AdminUserRepository handles admin user database operations
type AdminUserRepository struct {
	db DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{
		db: db,
	}
}

// GetAdminByEmail retrieves an admin user by email. Returns nil, nil when not
// found so callers can produce a uniform invalid-credentials error.
func (r *AdminUserRepository) GetAdminByEmail(email string) (*models.AdminUser, error) {
	var admin models.AdminUser

	query := `
		SELECT id, email, password_hash, is_active, last_login_at, created_at
		FROM admin_users
		WHERE email = $1
	`

	err := r.db.Get(&admin, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}

	return &admin, nil
}

// UpdateLastLogin records the timestamp of a successful login
func (r *AdminUserRepository) UpdateLastLogin(id uuid.UUID) error {
	query := `UPDATE admin_users SET last_login_at = $1 WHERE id = $2`

	if _, err := r.db.Exec(query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}
