// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/carterperez-dev/surveys/internal/config"
	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/testutil"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(testutil.NewDatabase(t).DB))
}

func seedConfig() config.SeedConfig {
	return config.SeedConfig{
		Enabled:    true,
		AdminName:  "Administrator",
		AdminEmail: "admin@demo.com",
		UserName:   "User",
		UserEmail:  "user@demo.com",
		Password:   "1234",
	}
}

func TestSeedDefaultsOnlyOnEmptyTable(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	n, err := s.SeedDefaults(ctx, seedConfig())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 seeded users, got %d", n)
	}

	n, err = s.SeedDefaults(ctx, seedConfig())
	if err != nil || n != 0 {
		t.Fatalf("expected second seed to be a no-op, n=%d err=%v", n, err)
	}

	admin, err := s.GetByEmail(ctx, "Admin@Demo.com")
	if err != nil {
		t.Fatalf("lookup admin: %v", err)
	}
	if admin.Role != core.RoleAdministrator {
		t.Fatalf("expected administrator role, got %q", admin.Role)
	}

	ok, err := core.VerifyPassword("1234", admin.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected seeded password to verify, ok=%v err=%v", ok, err)
	}
}

func TestSeedDisabled(t *testing.T) {
	s := newService(t)
	cfg := seedConfig()
	cfg.Enabled = false

	n, err := s.SeedDefaults(context.Background(), cfg)
	if err != nil || n != 0 {
		t.Fatalf("expected disabled seed to do nothing, n=%d err=%v", n, err)
	}

	count, err := s.CountUsers(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("expected empty users table, count=%d err=%v", count, err)
	}
}

func TestRegister(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterRequest{
		Name:     "Ana",
		Email:    " Ana@Example.com ",
		Password: "secret",
		Role:     core.RoleUser,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 || u.Email != "ana@example.com" {
		t.Fatalf("unexpected user %+v", u)
	}

	_, err = s.Register(ctx, RegisterRequest{
		Name:     "Other Ana",
		Email:    "ana@example.com",
		Password: "secret",
		Role:     core.RoleUser,
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	_, err = s.Register(ctx, RegisterRequest{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "secret",
		Role:     "superuser",
	})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}

	got, err := s.GetByID(ctx, u.ID)
	if err != nil || got.Name != "Ana" {
		t.Fatalf("GetByID: %+v %v", got, err)
	}

	if _, err := s.GetByID(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterRequest{
		Name: "Bo", Email: "bo@example.com", Password: "first", Role: core.RoleUser,
	})
	if err != nil {
		t.Fatal(err)
	}

	hash, err := core.HashPassword("second")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdatePassword(ctx, u.ID, hash); err != nil {
		t.Fatalf("update password: %v", err)
	}

	info, err := s.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := core.VerifyPassword("second", info.PasswordHash); !ok {
		t.Fatalf("expected new password to verify")
	}

	if err := s.UpdatePassword(ctx, 4242, hash); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
