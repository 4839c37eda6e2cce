// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/surveys/internal/config"
	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/middleware"
	"github.com/carterperez-dev/surveys/internal/web"
)

const invalidCredentialsMessage = "Invalid email or password"

type Handler struct {
	service   *Service
	views     *web.Renderer
	cookie    config.SessionConfig
	validator *validator.Validate
}

func NewHandler(
	service *Service,
	views *web.Renderer,
	cookie config.SessionConfig,
) *Handler {
	return &Handler{
		service:   service,
		views:     views,
		cookie:    cookie,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the public login form. loginLimiter guards
// credential checks.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	loginLimiter func(http.Handler) http.Handler,
) {
	r.Get("/login", h.LoginForm)
	r.With(loginLimiter).Post("/login", h.Login)
}

// RegisterSessionRoutes mounts logout. r must already require a session.
func (h *Handler) RegisterSessionRoutes(r chi.Router) {
	r.Get("/logout", h.Logout)
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, "login", "Sign in", LoginPage{})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.Render(w, r, "login", "Sign in", LoginPage{},
			web.Flash{Kind: web.KindDanger, Message: invalidCredentialsMessage})
		return
	}

	req := LoginRequestFromForm(r)
	page := LoginPage{Email: req.Email}

	if err := h.validator.Struct(req); err != nil {
		h.views.Render(w, r, "login", "Sign in", page,
			web.Flash{Kind: web.KindDanger, Message: invalidCredentialsMessage})
		return
	}

	result, err := h.service.Login(
		r.Context(),
		req,
		r.UserAgent(),
		extractIPAddress(r),
	)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.views.Render(w, r, "login", "Sign in", page,
				web.Flash{Kind: web.KindDanger, Message: invalidCredentialsMessage})
			return
		}
		h.views.Error(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	core.AddSpanEvent(r.Context(), "login")
	h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindSuccess,
		"Welcome, "+result.Identity.Name)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(h.cookie.CookieName); err == nil && c.Value != "" {
		if err := h.service.Logout(r.Context(), c.Value); err != nil {
			h.views.Error(w, r, err)
			return
		}
	}

	middleware.ClearCookie(w, h.cookie.CookieName)
	h.views.FlashRedirect(w, r, middleware.LoginPath, web.KindInfo,
		"You have been signed out")
}

func extractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
