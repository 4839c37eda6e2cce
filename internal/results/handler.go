// AngelaMos | 2026
// handler.go

package results

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/middleware"
	"github.com/carterperez-dev/surveys/internal/web"
)

type Handler struct {
	service *Service
	views   *web.Renderer
}

func NewHandler(service *Service, views *web.Renderer) *Handler {
	return &Handler{service: service, views: views}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.With(adminOnly).Get("/encuestas/{id}/resultados", h.Results)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, "Survey not found")
		return
	}

	report, err := h.service.Report(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, "Survey not found")
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.Render(w, r, "results", "Results: "+report.Survey.Title, report)
}
