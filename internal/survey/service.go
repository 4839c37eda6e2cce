// AngelaMos | 2026
// service.go

package survey

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListSurveys(ctx context.Context) ([]Survey, error) {
	return s.repo.ListSurveys(ctx)
}

func (s *Service) CreateSurvey(
	ctx context.Context,
	req CreateSurveyRequest,
) (*Survey, error) {
	survey := &Survey{
		Title:       req.Title,
		Description: req.Description,
	}

	if err := s.repo.CreateSurvey(ctx, survey); err != nil {
		return nil, err
	}

	return survey, nil
}

func (s *Service) GetSurvey(ctx context.Context, id int64) (*Survey, error) {
	return s.repo.GetSurvey(ctx, id)
}

// DeleteSurvey removes the survey. Its questions and their answers go with
// it through the foreign key cascade.
func (s *Service) DeleteSurvey(ctx context.Context, id int64) error {
	return s.repo.DeleteSurvey(ctx, id)
}

// SurveyWithQuestions loads a survey and its questions in insertion order.
func (s *Service) SurveyWithQuestions(
	ctx context.Context,
	surveyID int64,
) (*Survey, []Question, error) {
	survey, err := s.repo.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.repo.ListQuestions(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	return survey, questions, nil
}

func (s *Service) AddQuestion(
	ctx context.Context,
	surveyID int64,
	req CreateQuestionRequest,
) (*Question, error) {
	if _, err := s.repo.GetSurvey(ctx, surveyID); err != nil {
		return nil, fmt.Errorf("add question: %w", err)
	}

	question := &Question{
		SurveyID: surveyID,
		Text:     req.Text,
		Type:     req.Type,
	}

	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *Service) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	return s.repo.GetQuestion(ctx, id)
}

// QuestionContext loads a question together with its survey and siblings
// for the edit view.
func (s *Service) QuestionContext(
	ctx context.Context,
	questionID int64,
) (*Question, *Survey, []Question, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, nil, nil, err
	}

	survey, questions, err := s.SurveyWithQuestions(ctx, question.SurveyID)
	if err != nil {
		return nil, nil, nil, err
	}

	return question, survey, questions, nil
}

// UpdateQuestionText renames a question and returns its survey id.
func (s *Service) UpdateQuestionText(
	ctx context.Context,
	questionID int64,
	req UpdateQuestionRequest,
) (int64, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.UpdateQuestionText(ctx, questionID, req.Text); err != nil {
		return 0, err
	}

	return question.SurveyID, nil
}

// DeleteQuestion removes a question and its answers and returns the id of
// the survey it belonged to.
func (s *Service) DeleteQuestion(ctx context.Context, questionID int64) (int64, error) {
	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.DeleteQuestion(ctx, questionID); err != nil {
		return 0, err
	}

	return question.SurveyID, nil
}

type Counts struct {
	Surveys   int `json:"surveys"`
	Questions int `json:"questions"`
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	surveys, err := s.repo.CountSurveys(ctx)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.CountQuestions(ctx)
	if err != nil {
		return nil, err
	}

	return &Counts{Surveys: surveys, Questions: questions}, nil
}
