// AngelaMos | 2026
// entity.go

package survey

import (
	"time"
)

// Question types. Anything other than TypeScale is answered as free text.
const (
	TypeScale = "valor"
	TypeText  = "texto"
)

var QuestionTypes = []string{TypeScale, TypeText}

type Survey struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type Question struct {
	ID       int64  `db:"id"`
	SurveyID int64  `db:"survey_id"`
	Text     string `db:"text"`
	Type     string `db:"type"`
}

func (q *Question) IsNumeric() bool {
	return IsNumericType(q.Type)
}

func IsNumericType(t string) bool {
	return t == TypeScale
}
