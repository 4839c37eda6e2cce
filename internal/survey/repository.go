// AngelaMos | 2026
// repository.go

package survey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/surveys/internal/core"
)

type Repository interface {
	ListSurveys(ctx context.Context) ([]Survey, error)
	CreateSurvey(ctx context.Context, survey *Survey) error
	GetSurvey(ctx context.Context, id int64) (*Survey, error)
	DeleteSurvey(ctx context.Context, id int64) error
	CountSurveys(ctx context.Context) (int, error)

	ListQuestions(ctx context.Context, surveyID int64) ([]Question, error)
	CreateQuestion(ctx context.Context, question *Question) error
	GetQuestion(ctx context.Context, id int64) (*Question, error)
	UpdateQuestionText(ctx context.Context, id int64, text string) error
	DeleteQuestion(ctx context.Context, id int64) error
	CountQuestions(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListSurveys(ctx context.Context) ([]Survey, error) {
	query := `
		SELECT id, title, description, created_at
		FROM surveys
		ORDER BY id`

	surveys := []Survey{}
	if err := r.db.SelectContext(ctx, &surveys, query); err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}

	return surveys, nil
}

func (r *repository) CreateSurvey(ctx context.Context, survey *Survey) error {
	query := `
		INSERT INTO surveys (title, description, created_at)
		VALUES (?, ?, ?)
		RETURNING id`

	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now().UTC()
	}

	err := r.db.GetContext(ctx, &survey.ID, r.db.Rebind(query),
		survey.Title,
		survey.Description,
		survey.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create survey: %w", err)
	}

	return nil
}

func (r *repository) GetSurvey(ctx context.Context, id int64) (*Survey, error) {
	query := `
		SELECT id, title, description, created_at
		FROM surveys
		WHERE id = ?`

	var survey Survey
	err := r.db.GetContext(ctx, &survey, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get survey: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get survey: %w", err)
	}

	return &survey, nil
}

func (r *repository) DeleteSurvey(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM surveys WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete survey: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountSurveys(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM surveys`); err != nil {
		return 0, fmt.Errorf("count surveys: %w", err)
	}
	return n, nil
}

func (r *repository) ListQuestions(
	ctx context.Context,
	surveyID int64,
) ([]Question, error) {
	query := `
		SELECT id, survey_id, text, type
		FROM questions
		WHERE survey_id = ?
		ORDER BY id`

	questions := []Question{}
	if err := r.db.SelectContext(ctx, &questions, r.db.Rebind(query), surveyID); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

func (r *repository) CreateQuestion(ctx context.Context, question *Question) error {
	query := `
		INSERT INTO questions (survey_id, text, type)
		VALUES (?, ?, ?)
		RETURNING id`

	err := r.db.GetContext(ctx, &question.ID, r.db.Rebind(query),
		question.SurveyID,
		question.Text,
		question.Type,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create question: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create question: %w", err)
	}

	return nil
}

func (r *repository) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	query := `
		SELECT id, survey_id, text, type
		FROM questions
		WHERE id = ?`

	var question Question
	err := r.db.GetContext(ctx, &question, r.db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get question: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &question, nil
}

func (r *repository) UpdateQuestionText(
	ctx context.Context,
	id int64,
	text string,
) error {
	query := `
		UPDATE questions
		SET text = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), text, id)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update question: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete question: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}
