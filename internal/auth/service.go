// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/surveys/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserInfo struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type Service struct {
	repo         Repository
	tokens       *TokenManager
	userProvider UserProvider
	ttl          time.Duration
}

func NewService(
	repo Repository,
	tokens *TokenManager,
	userProvider UserProvider,
	ttl time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		tokens:       tokens,
		userProvider: userProvider,
		ttl:          ttl,
	}
}

// Login checks the credentials and opens a session. Unknown emails and wrong
// passwords return the same error after the same amount of hashing work.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*LoginResult, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.ID, newHash); err != nil {
			slog.Warn("password rehash failed", "user_id", user.ID, "error", err)
		}
	}

	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		UserAgent: truncate(userAgent, 512),
		IPAddress: ipAddress,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Identity:  toIdentity(user, session.ID),
	}, nil
}

// Authenticate resolves a session token to the identity of its user. The
// user row is re-read so role changes apply to open sessions.
func (s *Service) Authenticate(
	ctx context.Context,
	token string,
) (*core.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if session.UserID != claims.UserID {
		return nil, fmt.Errorf("authenticate: subject mismatch: %w", core.ErrTokenInvalid)
	}

	if session.IsRevoked() {
		return nil, fmt.Errorf("authenticate: %w", core.ErrTokenRevoked)
	}

	if session.IsExpired() {
		return nil, fmt.Errorf("authenticate: %w", core.ErrTokenExpired)
	}

	user, err := s.userProvider.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return toIdentity(user, session.ID), nil
}

// Logout revokes the session behind token. Tokens that no longer resolve are
// treated as already logged out.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil //nolint:nilerr // an unreadable token has no session to revoke
	}

	if err := s.repo.Revoke(ctx, claims.SessionID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}
	return nil
}

func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}

// RunPurger deletes dead sessions every interval until ctx is done.
func (s *Service) RunPurger(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				slog.Error("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged sessions", "count", n)
			}
		}
	}
}

func toIdentity(user *UserInfo, sessionID string) *core.Identity {
	return &core.Identity{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: sessionID,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
