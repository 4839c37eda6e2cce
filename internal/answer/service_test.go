// AngelaMos | 2026
// service_test.go

package answer

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/survey"
	"github.com/carterperez-dev/surveys/internal/testutil"
)

type fixture struct {
	db       *core.Database
	service  *Service
	surveyID int64
	numeric  int64
	text     int64
	userID   int64
	otherID  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := testutil.NewDatabase(t)
	surveys := survey.NewService(survey.NewRepository(db.DB))

	sv, err := surveys.CreateSurvey(ctx, survey.CreateSurveyRequest{Title: "Satisfaction"})
	if err != nil {
		t.Fatal(err)
	}
	nq, err := surveys.AddQuestion(ctx, sv.ID, survey.CreateQuestionRequest{Text: "Rate 1-5", Type: survey.TypeScale})
	if err != nil {
		t.Fatal(err)
	}
	tq, err := surveys.AddQuestion(ctx, sv.ID, survey.CreateQuestionRequest{Text: "Comments", Type: survey.TypeText})
	if err != nil {
		t.Fatal(err)
	}

	insertUser := `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`
	userID := testutil.MustExec(t, db, insertUser, "User", "user@demo.com", "x", core.RoleUser)
	otherID := testutil.MustExec(t, db, insertUser, "Other", "other@demo.com", "x", core.RoleUser)

	return &fixture{
		db:       db,
		service:  NewService(db.DB, surveys),
		surveyID: sv.ID,
		numeric:  nq.ID,
		text:     tq.ID,
		userID:   userID,
		otherID:  otherID,
	}
}

func (f *fixture) form(value, text string) url.Values {
	v := url.Values{}
	v.Set(ValueField(f.numeric), value)
	v.Set(TextField(f.text), text)
	return v
}

func (f *fixture) rows(t *testing.T, userID int64) map[int64]Row {
	t.Helper()
	_, rows, err := f.service.Form(context.Background(), f.surveyID, userID)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	out := make(map[int64]Row, len(rows))
	for _, r := range rows {
		out[r.QuestionID] = r
	}
	return out
}

func TestFormWithoutAnswers(t *testing.T) {
	f := newFixture(t)

	rows := f.rows(t, f.userID)
	if len(rows) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Answered() || r.Prefill() != "" {
			t.Fatalf("expected unanswered row, got %+v", r)
		}
	}
	if rows[f.numeric].FieldName() != ValueField(f.numeric) || rows[f.text].FieldName() != TextField(f.text) {
		t.Fatalf("unexpected field names")
	}
}

func TestSubmitPrefillsNextForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.service.Submit(ctx, f.surveyID, f.userID, f.form("4", "great"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Saved != 2 || res.Skipped != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	rows := f.rows(t, f.userID)
	if rows[f.numeric].Prefill() != "4" || rows[f.text].Prefill() != "great" {
		t.Fatalf("unexpected prefill %q %q", rows[f.numeric].Prefill(), rows[f.text].Prefill())
	}

	other := f.rows(t, f.otherID)
	if other[f.numeric].Answered() || other[f.text].Answered() {
		t.Fatalf("answers must not leak across users")
	}
}

func TestSubmitBlankAndMalformedNumericKeepPreviousValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Submit(ctx, f.surveyID, f.userID, f.form("3", "first")); err != nil {
		t.Fatal(err)
	}

	res, err := f.service.Submit(ctx, f.surveyID, f.userID, f.form("", ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.Saved != 1 || res.Skipped != 1 || res.Malformed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}

	rows := f.rows(t, f.userID)
	if rows[f.numeric].Prefill() != "3" {
		t.Fatalf("blank numeric must keep old value, got %q", rows[f.numeric].Prefill())
	}
	if !rows[f.text].Answered() || rows[f.text].Prefill() != "" {
		t.Fatalf("blank text must overwrite with empty string, got %+v", rows[f.text])
	}

	res, err = f.service.Submit(ctx, f.surveyID, f.userID, f.form("lots", "second"))
	if err != nil {
		t.Fatalf("malformed numeric must not fail the submission: %v", err)
	}
	if res.Malformed != 1 || res.Saved != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	rows = f.rows(t, f.userID)
	if rows[f.numeric].Prefill() != "3" || rows[f.text].Prefill() != "second" {
		t.Fatalf("unexpected rows after malformed submit: %+v", rows)
	}
}

func TestSubmitUnknownSurvey(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Submit(context.Background(), 9999, f.userID, url.Values{})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClearRemovesOnlyOwnAnswers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, uid := range []int64{f.userID, f.otherID} {
		if _, err := f.service.Submit(ctx, f.surveyID, uid, f.form("5", "ok")); err != nil {
			t.Fatal(err)
		}
	}

	n, err := f.service.Clear(ctx, f.surveyID, f.userID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted answers, got %d", n)
	}

	if got := testutil.Count(t, f.db, "answers", "user_id = ?", f.otherID); got != 2 {
		t.Fatalf("expected other user's answers to survive, got %d", got)
	}

	total, err := f.service.Count(ctx)
	if err != nil || total != 2 {
		t.Fatalf("expected 2 answers in total, got %d (%v)", total, err)
	}
}

func TestRepeatedSubmissionsKeepOneRowWithLatestValue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		values := rapid.SliceOfN(rapid.IntRange(1, 5), 1, 6).Draw(rt, "values")

		for _, v := range values {
			if _, err := f.service.Submit(ctx, f.surveyID, f.userID, f.form(strconv.Itoa(v), "")); err != nil {
				rt.Fatalf("submit: %v", err)
			}
		}

		var rows []Answer
		err := f.db.DB.SelectContext(ctx, &rows, f.db.DB.Rebind(
			`SELECT id, question_id, user_id, text_value, numeric_value
			 FROM answers WHERE question_id = ? AND user_id = ?`),
			f.numeric, f.userID)
		if err != nil {
			rt.Fatalf("select: %v", err)
		}
		if len(rows) != 1 {
			rt.Fatalf("expected exactly one row, got %d", len(rows))
		}
		last := int64(values[len(values)-1])
		if rows[0].NumericValue == nil || *rows[0].NumericValue != last {
			rt.Fatalf("expected latest value %d, got %v", last, rows[0].NumericValue)
		}
	})
}
