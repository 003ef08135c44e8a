package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/abitareitalia/leads-backend/internal/models"
	"github.com/abitareitalia/leads-backend/pkg/jwt"
)

// ErrInvalidCredentials is returned for any admin login failure. Deliberately
// uniform: wrong email and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// adminUserStore is the repository contract of admin authentication
type adminUserStore interface {
	GetAdminByEmail(email string) (*models.AdminUser, error)
	UpdateLastLogin(id uuid.UUID) error
}

// AdminAuthService authenticates dashboard admins against bcrypt password
// hashes and issues access tokens
type AdminAuthService struct {
	admins            adminUserStore
	jwtService        *jwt.Service
	accessTokenExpiry time.Duration
	logger            *logrus.Logger
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(admins adminUserStore, jwtService *jwt.Service, accessTokenExpiry time.Duration, logger *logrus.Logger) *AdminAuthService {
	return &AdminAuthService{
		admins:            admins,
		jwtService:        jwtService,
		accessTokenExpiry: accessTokenExpiry,
		logger:            logger,
	}
}

// Login authenticates an admin and returns an access token
func (s *AdminAuthService) Login(email, password string) (*models.AdminLoginResponse, error) {
	admin, err := s.admins.GetAdminByEmail(email)
	if err != nil {
		s.logger.WithError(err).Error("admin lookup failed")
		return nil, &StorageError{Op: "admin lookup", Err: err}
	}
	if admin == nil || !admin.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(admin.ID, admin.Email, jwt.RoleAdmin)
	if err != nil {
		s.logger.WithError(err).Error("admin token generation failed")
		return nil, err
	}

	if err := s.admins.UpdateLastLogin(admin.ID); err != nil {
		// Non-fatal: the login itself succeeded
		s.logger.WithError(err).WithField("admin_id", admin.ID).Warn("failed to update last login")
	}

	return &models.AdminLoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.accessTokenExpiry / time.Second),
		AdminID:     admin.ID,
		Email:       admin.Email,
	}, nil
}
