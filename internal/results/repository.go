// AngelaMos | 2026
// repository.go

package results

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/surveys/internal/core"
)

type Repository interface {
	ListForSurvey(ctx context.Context, surveyID int64) ([]Row, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListForSurvey(ctx context.Context, surveyID int64) ([]Row, error) {
	query := `
		SELECT q.id AS question_id,
		       q.text AS question_text,
		       q.type AS question_type,
		       a.id AS answer_id,
		       a.numeric_value,
		       a.text_value,
		       u.name AS user_name
		FROM questions q
		LEFT JOIN answers a ON a.question_id = q.id
		LEFT JOIN users u ON u.id = a.user_id
		WHERE q.survey_id = ?
		ORDER BY q.id, a.id`

	rows := []Row{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), surveyID); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return rows, nil
}
