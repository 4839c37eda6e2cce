// AngelaMos | 2026
// token.go

package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/surveys/internal/config"
	"github.com/carterperez-dev/surveys/internal/core"
)

const sessionTokenType = "session"

// TokenManager signs the session cookie. The token only points at a
// session row; revocation lives in the database.
type TokenManager struct {
	key    jwk.Key
	issuer string
}

type SessionClaims struct {
	SessionID string
	UserID    int64
}

func NewTokenManager(cfg config.SessionConfig) (*TokenManager, error) {
	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import session key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{key: key, issuer: cfg.Issuer}, nil
}

func (m *TokenManager) Issue(session *Session) (string, error) {
	token, err := jwt.NewBuilder().
		JwtID(session.ID).
		Issuer(m.issuer).
		Subject(strconv.FormatInt(session.UserID, 10)).
		IssuedAt(session.CreatedAt).
		Expiration(session.ExpiresAt).
		Claim("type", sessionTokenType).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *TokenManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("parse session token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("parse session token: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != sessionTokenType {
		return nil, fmt.Errorf(
			"parse session token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	sessionID, ok := token.JwtID()
	if !ok || sessionID == "" {
		return nil, fmt.Errorf(
			"parse session token: missing jti: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok {
		return nil, fmt.Errorf(
			"parse session token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf(
			"parse session token: bad subject: %w",
			core.ErrTokenInvalid,
		)
	}

	return &SessionClaims{SessionID: sessionID, UserID: userID}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
