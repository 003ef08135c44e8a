package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/abitareitalia/leads-backend/pkg/jwt"
)

type fakeAdminStore struct {
	admin        *models.AdminUser
	lookupErr    error
	lastLoginIDs []uuid.UUID
	lastLoginErr error
}

func (f *fakeAdminStore) GetAdminByEmail(_ string) (*models.AdminUser, error) {
	return f.admin, f.lookupErr
}

func (f *fakeAdminStore) UpdateLastLogin(id uuid.UUID) error {
	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	f.lastLoginIDs = append(f.lastLoginIDs, id)
	return nil
}

func activeAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@abitareitalia.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}
}

func TestAdminLogin(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)

	t.Run("Success", func(t *testing.T) {
		store := &fakeAdminStore{admin: activeAdmin(t, "correct-horse")}
		svc := NewAdminAuthService(store, jwtService, time.Hour, newTestLogger())

		resp, err := svc.Login("admin@abitareitalia.com", "correct-horse")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, store.admin.ID, resp.AdminID)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Len(t, store.lastLoginIDs, 1)

		claims, err := jwtService.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.RoleAdmin, claims.Role)
		assert.Equal(t, store.admin.ID, claims.UserID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		store := &fakeAdminStore{admin: activeAdmin(t, "correct-horse")}
		svc := NewAdminAuthService(store, jwtService, time.Hour, newTestLogger())

		resp, err := svc.Login("admin@abitareitalia.com", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		store := &fakeAdminStore{}
		svc := NewAdminAuthService(store, jwtService, time.Hour, newTestLogger())

		resp, err := svc.Login("nobody@abitareitalia.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("Inactive Admin", func(t *testing.T) {
		admin := activeAdmin(t, "correct-horse")
		admin.IsActive = false
		store := &fakeAdminStore{admin: admin}
		svc := NewAdminAuthService(store, jwtService, time.Hour, newTestLogger())

		resp, err := svc.Login("admin@abitareitalia.com", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, resp)
	})

	t.Run("Last Login Failure Is Non Fatal", func(t *testing.T) {
		store := &fakeAdminStore{admin: activeAdmin(t, "correct-horse"), lastLoginErr: fmt.Errorf("connection refused")}
		svc := NewAdminAuthService(store, jwtService, time.Hour, newTestLogger())

		resp, err := svc.Login("admin@abitareitalia.com", "correct-horse")
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}
