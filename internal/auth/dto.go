// AngelaMos | 2026
// dto.go

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/surveys/internal/core"
)

type LoginRequest struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,max=128"`
}

func LoginRequestFromForm(r *http.Request) LoginRequest {
	return LoginRequest{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  *core.Identity
}

// LoginPage is what the login template renders.
type LoginPage struct {
	Email string
}
