// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/surveys/internal/auth"
	"github.com/carterperez-dev/surveys/internal/config"
	"github.com/carterperez-dev/surveys/internal/core"
)

var ErrEmailExists = errors.New("email already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// Register creates an account with a freshly hashed password.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*User, error) {
	if !core.IsValidRole(req.Role) {
		return nil, fmt.Errorf(
			"register: invalid role %q: %w",
			req.Role,
			core.ErrInvalidInput,
		)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// SeedDefaults creates the demo administrator and user when the users table
// is empty. It returns the number of accounts created.
func (s *Service) SeedDefaults(
	ctx context.Context,
	cfg config.SeedConfig,
) (int, error) {
	if !cfg.Enabled {
		return 0, nil
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	seeds := []RegisterRequest{
		{
			Name:     cfg.AdminName,
			Email:    cfg.AdminEmail,
			Password: cfg.Password,
			Role:     core.RoleAdministrator,
		},
		{
			Name:     cfg.UserName,
			Email:    cfg.UserEmail,
			Password: cfg.Password,
			Role:     core.RoleUser,
		},
	}

	created := 0
	for _, req := range seeds {
		if _, err := s.Register(ctx, req); err != nil {
			return created, fmt.Errorf("seed %s: %w", req.Email, err)
		}
		slog.Info("seeded user", "email", req.Email, "role", req.Role)
		created++
	}

	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

var _ auth.UserProvider = (*Service)(nil)
