// AngelaMos | 2026
// entity.go

package answer

import (
	"fmt"
	"strconv"

	"github.com/carterperez-dev/surveys/internal/survey"
)

type Answer struct {
	ID           int64   `db:"id"`
	QuestionID   int64   `db:"question_id"`
	UserID       *int64  `db:"user_id"`
	TextValue    *string `db:"text_value"`
	NumericValue *int64  `db:"numeric_value"`
}

// Row is one question of a survey joined with a single user's answer, if
// any. It drives the pre-filled answer form.
type Row struct {
	QuestionID   int64   `db:"question_id"`
	Text         string  `db:"text"`
	Type         string  `db:"type"`
	TextValue    *string `db:"text_value"`
	NumericValue *int64  `db:"numeric_value"`
}

func (r Row) IsNumeric() bool {
	return survey.IsNumericType(r.Type)
}

func (r Row) FieldName() string {
	if r.IsNumeric() {
		return ValueField(r.QuestionID)
	}
	return TextField(r.QuestionID)
}

// Prefill is the stored value rendered back into the form.
func (r Row) Prefill() string {
	if r.IsNumeric() {
		if r.NumericValue == nil {
			return ""
		}
		return strconv.FormatInt(*r.NumericValue, 10)
	}
	if r.TextValue == nil {
		return ""
	}
	return *r.TextValue
}

func (r Row) Answered() bool {
	return r.TextValue != nil || r.NumericValue != nil
}

func ValueField(questionID int64) string {
	return fmt.Sprintf("value_%d", questionID)
}

func TextField(questionID int64) string {
	return fmt.Sprintf("text_%d", questionID)
}
