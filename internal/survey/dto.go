// AngelaMos | 2026
// dto.go

package survey

import (
	"net/http"
	"strings"
)

type CreateSurveyRequest struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
}

func CreateSurveyRequestFromForm(r *http.Request) CreateSurveyRequest {
	return CreateSurveyRequest{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
}

type CreateQuestionRequest struct {
	Text string `validate:"required,max=500"`
	Type string `validate:"required,max=32"`
}

func CreateQuestionRequestFromForm(r *http.Request) CreateQuestionRequest {
	return CreateQuestionRequest{
		Text: strings.TrimSpace(r.PostFormValue("text")),
		Type: strings.TrimSpace(r.PostFormValue("type")),
	}
}

type UpdateQuestionRequest struct {
	Text string `validate:"required,max=500"`
}

func UpdateQuestionRequestFromForm(r *http.Request) UpdateQuestionRequest {
	return UpdateQuestionRequest{
		Text: strings.TrimSpace(r.PostFormValue("text")),
	}
}

type PanelPage struct {
	Surveys []Survey
}

type NewSurveyPage struct {
	Form CreateSurveyRequest
}

// QuestionsPage backs both the question list and the edit view. Editing is
// set when a single question is being renamed.
type QuestionsPage struct {
	Survey    Survey
	Questions []Question
	Editing   *Question
	Types     []string
	Form      CreateQuestionRequest
}
