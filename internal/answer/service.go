// AngelaMos | 2026
// service.go

package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/survey"
)

// SurveyFinder is the slice of the survey service answers depend on.
type SurveyFinder interface {
	GetSurvey(ctx context.Context, id int64) (*survey.Survey, error)
}

type Service struct {
	db      *sqlx.DB
	repo    Repository
	surveys SurveyFinder
}

func NewService(db *sqlx.DB, surveys SurveyFinder) *Service {
	return &Service{
		db:      db,
		repo:    NewRepository(db),
		surveys: surveys,
	}
}

// Form returns the survey and every question paired with the user's
// previous answer.
func (s *Service) Form(
	ctx context.Context,
	surveyID, userID int64,
) (*survey.Survey, []Row, error) {
	sv, err := s.surveys.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.repo.ListForUser(ctx, surveyID, userID)
	if err != nil {
		return nil, nil, err
	}

	return sv, rows, nil
}

// Submit stores one answer per question of the survey in a single
// transaction. Numeric questions with a blank or unparsable value are
// skipped and keep their previous answer. Text questions are always
// written, blank included.
func (s *Service) Submit(
	ctx context.Context,
	surveyID, userID int64,
	form FormValues,
) (*SubmitResult, error) {
	if _, err := s.surveys.GetSurvey(ctx, surveyID); err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}

	result := &SubmitResult{}

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)

		rows, err := repo.ListForUser(ctx, surveyID, userID)
		if err != nil {
			return err
		}

		for _, row := range rows {
			a := &Answer{QuestionID: row.QuestionID, UserID: &userID}

			if row.IsNumeric() {
				raw := strings.TrimSpace(form.Get(ValueField(row.QuestionID)))
				if raw == "" {
					result.Skipped++
					continue
				}
				v, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					slog.Debug("skipping malformed numeric answer",
						"question_id", row.QuestionID,
						"value", raw,
					)
					result.Skipped++
					result.Malformed++
					continue
				}
				a.NumericValue = &v
			} else {
				text := form.Get(TextField(row.QuestionID))
				a.TextValue = &text
			}

			if err := repo.Upsert(ctx, a); err != nil {
				return err
			}
			result.Saved++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit answers: %w", err)
	}

	core.AddSpanEvent(ctx, "answers.submitted")
	return result, nil
}

// Clear removes all of the user's answers for the survey.
func (s *Service) Clear(ctx context.Context, surveyID, userID int64) (int64, error) {
	return s.repo.DeleteForUser(ctx, surveyID, userID)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
