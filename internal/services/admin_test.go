package services

import (
	"context"
	"errors"
	"testing"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type fakeAdminStore struct {
	admins map[string]*models.AdminUser
}

func (s *fakeAdminStore) Create(_ context.Context, admin *models.AdminUser) error {
	if s.admins == nil {
		s.admins = map[string]*models.AdminUser{}
	}
	s.admins[admin.Email] = admin
	return nil
}

func (s *fakeAdminStore) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if admin, ok := s.admins[email]; ok {
		return admin, nil
	}
	return nil, db.ErrNotFound
}

func (s *fakeAdminStore) List(_ context.Context) ([]*models.AdminUser, error) {
	var out []*models.AdminUser
	for _, admin := range s.admins {
		out = append(out, admin)
	}
	return out, nil
}

func newTestAdminService(masterPassword string) (*AdminService, *fakeAdminStore) {
	store := &fakeAdminStore{}
	return &AdminService{admins: store, masterPassword: masterPassword, logger: testLogger()}, store
}

func TestCreateAdmin(t *testing.T) {
	t.Parallel()

	svc, store := newTestAdminService("s3cret")

	admin, err := svc.CreateAdmin(context.Background(), CreateAdminInput{
		Email:          "ops@example.com",
		DisplayName:    "Ops",
		MasterPassword: "s3cret",
	})
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if admin.UID == "" {
		t.Fatalf("UID = empty, want generated")
	}
	if _, ok := store.admins["ops@example.com"]; !ok {
		t.Fatalf("admin not persisted")
	}
}

func TestCreateAdminIsIdempotentByEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAdminService("s3cret")
	input := CreateAdminInput{Email: "ops@example.com", MasterPassword: "s3cret"}

	first, err := svc.CreateAdmin(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	second, err := svc.CreateAdmin(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateAdmin() repeat error = %v", err)
	}
	if second.UID != first.UID {
		t.Fatalf("repeat UID = %q, want existing %q", second.UID, first.UID)
	}
}

func TestCreateAdminRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		masterPassword string
		input          CreateAdminInput
		wantErr        error
	}{
		{
			name:           "wrong master password",
			masterPassword: "s3cret",
			input:          CreateAdminInput{Email: "ops@example.com", MasterPassword: "nope"},
			wantErr:        ErrForbidden,
		},
		{
			name:           "provisioning disabled",
			masterPassword: "",
			input:          CreateAdminInput{Email: "ops@example.com", MasterPassword: ""},
			wantErr:        ErrForbidden,
		},
		{
			name:           "missing email",
			masterPassword: "s3cret",
			input:          CreateAdminInput{MasterPassword: "s3cret"},
			wantErr:        ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, store := newTestAdminService(tc.masterPassword)
			_, err := svc.CreateAdmin(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CreateAdmin() error = %v, want %v", err, tc.wantErr)
			}
			if len(store.admins) != 0 {
				t.Fatalf("admins persisted = %d, want 0", len(store.admins))
			}
		})
	}
}
