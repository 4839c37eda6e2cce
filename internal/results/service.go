// AngelaMos | 2026
// service.go

package results

import (
	"context"

	"github.com/carterperez-dev/surveys/internal/survey"
)

type SurveyFinder interface {
	GetSurvey(ctx context.Context, id int64) (*survey.Survey, error)
}

type Service struct {
	repo    Repository
	surveys SurveyFinder
}

func NewService(repo Repository, surveys SurveyFinder) *Service {
	return &Service{repo: repo, surveys: surveys}
}

type Report struct {
	Survey  survey.Survey
	Rows    []Row
	Summary Summary
}

func (s *Service) Report(ctx context.Context, surveyID int64) (*Report, error) {
	sv, err := s.surveys.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	return &Report{
		Survey:  *sv,
		Rows:    rows,
		Summary: Aggregate(rows),
	}, nil
}
