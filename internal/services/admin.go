package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type adminStore interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	List(ctx context.Context) ([]*models.AdminUser, error)
}

// AdminService provisions back-office accounts. Creation is guarded by a
// master password rather than an existing admin session so the first admin
// can bootstrap itself.
type AdminService struct {
	admins         adminStore
	masterPassword string
	logger         *slog.Logger
}

func NewAdminService(admins *db.AdminStore, masterPassword string, logger *slog.Logger) *AdminService {
	return &AdminService{admins: admins, masterPassword: masterPassword, logger: logger}
}

type CreateAdminInput struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	PhoneNumber    string `json:"phoneNumber"`
	SuperAdmin     bool   `json:"superAdmin"`
	MasterPassword string `json:"masterPassword"`
}

// CreateAdmin registers an admin account. Repeating the call for an email
// that is already registered returns the existing record.
func (s *AdminService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*models.AdminUser, error) {
	logger := logging.FromContext(ctx, s.logger)

	if s.masterPassword == "" {
		return nil, fmt.Errorf("%w: admin provisioning is disabled", ErrForbidden)
	}
	if subtle.ConstantTimeCompare([]byte(input.MasterPassword), []byte(s.masterPassword)) != 1 {
		return nil, fmt.Errorf("%w: master password mismatch", ErrForbidden)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if existing, err := s.admins.GetByEmail(ctx, input.Email); err == nil {
		return existing, nil
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	admin := &models.AdminUser{
		UID:         uuid.NewString(),
		Email:       input.Email,
		DisplayName: input.DisplayName,
		PhoneNumber: input.PhoneNumber,
		SuperAdmin:  input.SuperAdmin,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	logger.Info("admin account created", "email", admin.Email, "superAdmin", admin.SuperAdmin)
	return admin, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]*models.AdminUser, error) {
	return s.admins.List(ctx)
}
