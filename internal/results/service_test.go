// AngelaMos | 2026
// service_test.go

package results

import (
	"context"
	"errors"
	"testing"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/survey"
	"github.com/carterperez-dev/surveys/internal/testutil"
)

func TestReportScopedToSurvey(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	surveys := survey.NewService(survey.NewRepository(db.DB))
	svc := NewService(NewRepository(db.DB), surveys)

	insertUser := `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`
	ana := testutil.MustExec(t, db, insertUser, "Ana", "ana@demo.com", "x", core.RoleUser)
	bo := testutil.MustExec(t, db, insertUser, "Bo", "bo@demo.com", "x", core.RoleUser)

	target, err := surveys.CreateSurvey(ctx, survey.CreateSurveyRequest{Title: "Satisfaction"})
	if err != nil {
		t.Fatal(err)
	}
	other, err := surveys.CreateSurvey(ctx, survey.CreateSurveyRequest{Title: "Other"})
	if err != nil {
		t.Fatal(err)
	}

	rate, err := surveys.AddQuestion(ctx, target.ID, survey.CreateQuestionRequest{Text: "Rate 1-5", Type: survey.TypeScale})
	if err != nil {
		t.Fatal(err)
	}
	comments, err := surveys.AddQuestion(ctx, target.ID, survey.CreateQuestionRequest{Text: "Comments", Type: survey.TypeText})
	if err != nil {
		t.Fatal(err)
	}
	empty, err := surveys.AddQuestion(ctx, target.ID, survey.CreateQuestionRequest{Text: "Unanswered", Type: survey.TypeScale})
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := surveys.AddQuestion(ctx, other.ID, survey.CreateQuestionRequest{Text: "Rate 1-5", Type: survey.TypeScale})
	if err != nil {
		t.Fatal(err)
	}

	insertNumeric := `INSERT INTO answers (question_id, user_id, numeric_value) VALUES (?, ?, ?)`
	testutil.MustExec(t, db, insertNumeric, rate.ID, ana, 3)
	testutil.MustExec(t, db, insertNumeric, rate.ID, bo, 5)
	testutil.MustExec(t, db, insertNumeric, foreign.ID, ana, 1)
	testutil.MustExec(t, db,
		`INSERT INTO answers (question_id, user_id, text_value) VALUES (?, ?, ?)`,
		comments.ID, ana, "nice")

	report, err := svc.Report(ctx, target.ID)
	if err != nil {
		t.Fatalf("report: %v", err)
	}

	if len(report.Summary.Means) != 1 || report.Summary.Means[0] != 4 {
		t.Fatalf("expected a single mean of 4, got %v", report.Summary.Means)
	}
	if len(report.Rows) != 4 {
		t.Fatalf("expected 2 rate rows, 1 comment row and 1 empty row, got %d", len(report.Rows))
	}

	var sawEmpty bool
	for _, r := range report.Rows {
		if r.QuestionID == foreign.ID {
			t.Fatalf("rows from another survey leaked into the report")
		}
		if r.QuestionID == empty.ID {
			sawEmpty = true
			if r.HasAnswer() {
				t.Fatalf("expected empty question to have no answer")
			}
		}
	}
	if !sawEmpty {
		t.Fatalf("expected unanswered question to appear in rows")
	}
	if report.Rows[0].Answerer() != "Ana" {
		t.Fatalf("expected rows ordered by answer id, got %s first", report.Rows[0].Answerer())
	}

	if _, err := svc.Report(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
