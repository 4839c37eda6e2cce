// AngelaMos | 2026
// dto.go

package user

import (
	"net/http"
	"strings"
)

type RegisterRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=4,max=128"`
	Role     string `validate:"required,oneof=administrator user"`
}

func RegisterRequestFromForm(r *http.Request) RegisterRequest {
	return RegisterRequest{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
}

// RegisterPage is what the register template renders.
type RegisterPage struct {
	Form  RegisterRequest
	Users []User
}
