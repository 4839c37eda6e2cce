// AngelaMos | 2026
// repository.go

package answer

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/surveys/internal/core"
)

type Repository interface {
	ListForUser(ctx context.Context, surveyID, userID int64) ([]Row, error)
	Upsert(ctx context.Context, answer *Answer) error
	DeleteForUser(ctx context.Context, surveyID, userID int64) (int64, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListForUser(
	ctx context.Context,
	surveyID, userID int64,
) ([]Row, error) {
	query := `
		SELECT q.id AS question_id, q.text, q.type,
		       a.text_value, a.numeric_value
		FROM questions q
		LEFT JOIN answers a ON a.question_id = q.id AND a.user_id = ?
		WHERE q.survey_id = ?
		ORDER BY q.id`

	rows := []Row{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), userID, surveyID); err != nil {
		return nil, fmt.Errorf("list answers for user: %w", err)
	}

	return rows, nil
}

// Upsert writes the (question, user) answer, replacing both value columns
// of an existing row.
func (r *repository) Upsert(ctx context.Context, answer *Answer) error {
	query := `
		INSERT INTO answers (question_id, user_id, text_value, numeric_value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (question_id, user_id) DO UPDATE
		SET text_value = excluded.text_value,
		    numeric_value = excluded.numeric_value`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		answer.QuestionID,
		answer.UserID,
		answer.TextValue,
		answer.NumericValue,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("upsert answer: %w", core.ErrNotFound)
		}
		return fmt.Errorf("upsert answer: %w", err)
	}

	return nil
}

func (r *repository) DeleteForUser(
	ctx context.Context,
	surveyID, userID int64,
) (int64, error) {
	query := `
		DELETE FROM answers
		WHERE user_id = ?
		  AND question_id IN (SELECT id FROM questions WHERE survey_id = ?)`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), userID, surveyID)
	if err != nil {
		return 0, fmt.Errorf("delete answers: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete answers: %w", err)
	}

	return rows, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM answers`); err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	return n, nil
}
