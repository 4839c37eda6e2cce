// AngelaMos | 2026
// handler.go

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/web"
)

type Handler struct {
	service   *Service
	views     *web.Renderer
	validator *validator.Validate
}

func NewHandler(service *Service, views *web.Renderer) *Handler {
	return &Handler{
		service:   service,
		views:     views,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts account registration behind the admin gate.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.With(adminOnly).Get("/register", h.RegisterForm)
	r.With(adminOnly).Post("/register", h.Register)
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, RegisterRequest{Role: core.RoleUser})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.FlashRedirect(w, r, "/register", web.KindWarning, "Invalid form submission")
		return
	}

	req := RegisterRequestFromForm(r)
	if err := h.validator.Struct(req); err != nil {
		req.Password = ""
		h.render(w, r, req, web.Flash{
			Kind:    web.KindWarning,
			Message: core.FormatValidationError(err),
		})
		return
	}

	created, err := h.service.Register(r.Context(), req)
	if err != nil {
		req.Password = ""
		switch {
		case errors.Is(err, ErrEmailExists):
			h.render(w, r, req, web.Flash{
				Kind:    web.KindWarning,
				Message: "A user with that email already exists",
			})
		case errors.Is(err, core.ErrInvalidInput):
			h.render(w, r, req, web.Flash{
				Kind:    web.KindWarning,
				Message: "Unknown role",
			})
		default:
			h.views.Error(w, r, err)
		}
		return
	}

	h.views.FlashRedirect(w, r, "/register", web.KindSuccess,
		"User "+created.Email+" registered")
}

func (h *Handler) render(
	w http.ResponseWriter,
	r *http.Request,
	form RegisterRequest,
	inline ...web.Flash,
) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.views.Error(w, r, err)
		return
	}

	h.views.Render(w, r, "register", "Register user",
		RegisterPage{Form: form, Users: users}, inline...)
}
