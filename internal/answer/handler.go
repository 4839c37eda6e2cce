// AngelaMos | 2026
// handler.go

package answer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/middleware"
	"github.com/carterperez-dev/surveys/internal/web"
)

const msgSurveyNotFound = "Survey not found"

// scale is the set of choices offered for numeric questions.
var scale = []int{1, 2, 3, 4, 5}

type Handler struct {
	service *Service
	views   *web.Renderer
}

func NewHandler(service *Service, views *web.Renderer) *Handler {
	return &Handler{
		service: service,
		views:   views,
	}
}

// RegisterRoutes mounts the answer form. Every authenticated user may
// answer.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/encuestas/{id}/responder", h.Form)
	r.Post("/encuestas/{id}/responder", h.Submit)
	r.Get("/encuestas/{id}/eliminar_respuestas", h.Clear)
}

func RespondPath(surveyID int64) string {
	return fmt.Sprintf("/encuestas/%d/responder", surveyID)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
		return
	}

	sv, rows, err := h.service.Form(r.Context(), surveyID, middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.Render(w, r, "respond", sv.Title, RespondPage{
		Survey: *sv,
		Rows:   rows,
		Scale:  scale,
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.views.FlashRedirect(w, r, RespondPath(surveyID), web.KindWarning, "Invalid form submission")
		return
	}

	result, err := h.service.Submit(
		r.Context(),
		surveyID,
		middleware.GetUserID(r.Context()),
		r.PostForm,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	if result.Malformed > 0 {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning,
			fmt.Sprintf("Answers saved. %d invalid value(s) were ignored", result.Malformed))
		return
	}

	h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindSuccess, "Answers saved")
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
		return
	}

	if _, err := h.service.Clear(r.Context(), surveyID, middleware.GetUserID(r.Context())); err != nil {
		h.views.Error(w, r, err)
		return
	}

	h.views.FlashRedirect(w, r, RespondPath(surveyID), web.KindWarning, "Answers deleted")
}
