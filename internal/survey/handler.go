// AngelaMos | 2026
// handler.go

package survey

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/middleware"
	"github.com/carterperez-dev/surveys/internal/web"
)

const (
	msgSurveyNotFound   = "Survey not found"
	msgQuestionNotFound = "Question not found"
	msgNoSurvey         = "No survey selected"
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

// RegisterRoutes mounts the panel for every session and the authoring
// routes behind adminOnly.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Get("/", h.Panel)

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)

		r.Get("/encuestas/nueva", h.NewSurveyForm)
		r.Post("/encuestas/nueva", h.CreateSurvey)
		r.Post("/encuestas/eliminar", h.DeleteSurvey)

		r.Get("/encuestas/{id}/preguntas", h.Questions)
		r.Post("/encuestas/{id}/preguntas", h.AddQuestion)

		r.Get("/pregunta/{id}/editar", h.EditQuestionForm)
		r.Post("/pregunta/{id}/editar", h.EditQuestion)
		r.Post("/pregunta/{id}/eliminar", h.DeleteQuestion)
	})
}

func QuestionsPath(surveyID int64) string {
	return fmt.Sprintf("/encuestas/%d/preguntas", surveyID)
}

func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.service.ListSurveys(r.Context())
	if err != nil {
		h.views.Error(w, r, err)
		return
	}

	h.views.Render(w, r, "panel", "Surveys", PanelPage{Surveys: surveys})
}

func (h *Handler) NewSurveyForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, "survey_new", "New survey", NewSurveyPage{})
}

func (h *Handler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.FlashRedirect(w, r, "/encuestas/nueva", web.KindWarning, "Invalid form submission")
		return
	}

	req := CreateSurveyRequestFromForm(r)
	if err := h.validator.Struct(req); err != nil {
		h.views.Render(w, r, "survey_new", "New survey", NewSurveyPage{Form: req},
			web.Flash{Kind: web.KindWarning, Message: core.FormatValidationError(err)})
		return
	}

	if _, err := h.service.CreateSurvey(r.Context(), req); err != nil {
		h.views.Error(w, r, err)
		return
	}

	h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindSuccess, "Survey created")
}

func (h *Handler) DeleteSurvey(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgNoSurvey)
		return
	}

	raw := strings.TrimSpace(r.PostFormValue("survey_id"))
	if raw == "" {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgNoSurvey)
		return
	}

	id, ok := web.ParseID(raw)
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
		return
	}

	if err := h.service.DeleteSurvey(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindSuccess, "Survey deleted")
}

func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
		return
	}

	h.renderQuestions(w, r, surveyID, CreateQuestionRequest{Type: TypeScale})
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.views.FlashRedirect(w, r, QuestionsPath(surveyID), web.KindWarning, "Invalid form submission")
		return
	}

	req := CreateQuestionRequestFromForm(r)
	if err := h.validator.Struct(req); err != nil {
		h.renderQuestions(w, r, surveyID, req,
			web.Flash{Kind: web.KindWarning, Message: core.FormatValidationError(err)})
		return
	}

	if _, err := h.service.AddQuestion(r.Context(), surveyID, req); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.FlashRedirect(w, r, QuestionsPath(surveyID), web.KindSuccess, "Question added")
}

func (h *Handler) EditQuestionForm(w http.ResponseWriter, r *http.Request) {
	questionID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgQuestionNotFound)
		return
	}

	question, survey, questions, err := h.service.QuestionContext(r.Context(), questionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgQuestionNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.Render(w, r, "questions", "Edit question", QuestionsPage{
		Survey:    *survey,
		Questions: questions,
		Editing:   question,
		Types:     QuestionTypes,
	})
}

func (h *Handler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgQuestionNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, "Invalid form submission")
		return
	}

	req := UpdateQuestionRequestFromForm(r)
	if err := h.validator.Struct(req); err != nil {
		h.views.FlashRedirect(w, r, fmt.Sprintf("/pregunta/%d/editar", questionID),
			web.KindWarning, core.FormatValidationError(err))
		return
	}

	surveyID, err := h.service.UpdateQuestionText(r.Context(), questionID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgQuestionNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.FlashRedirect(w, r, QuestionsPath(surveyID), web.KindSuccess, "Question updated")
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := web.IDParam(r, "id")
	if !ok {
		h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgQuestionNotFound)
		return
	}

	surveyID, err := h.service.DeleteQuestion(r.Context(), questionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgQuestionNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.FlashRedirect(w, r, QuestionsPath(surveyID), web.KindWarning, "Question deleted")
}

func (h *Handler) renderQuestions(
	w http.ResponseWriter,
	r *http.Request,
	surveyID int64,
	form CreateQuestionRequest,
	inline ...web.Flash,
) {
	survey, questions, err := h.service.SurveyWithQuestions(r.Context(), surveyID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			h.views.FlashRedirect(w, r, middleware.PanelPath, web.KindWarning, msgSurveyNotFound)
			return
		}
		h.views.Error(w, r, err)
		return
	}

	h.views.Render(w, r, "questions", survey.Title, QuestionsPage{
		Survey:    *survey,
		Questions: questions,
		Types:     QuestionTypes,
		Form:      form,
	}, inline...)
}
