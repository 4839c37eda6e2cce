// AngelaMos | 2026
// service_test.go

package survey

import (
	"context"
	"errors"
	"testing"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/testutil"
)

func newService(t *testing.T) (*Service, *core.Database) {
	t.Helper()
	db := testutil.NewDatabase(t)
	return NewService(NewRepository(db.DB)), db
}

func TestCreateAndListSurveys(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	first, err := s.CreateSurvey(ctx, CreateSurveyRequest{Title: "Satisfaction", Description: "Quarterly"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateSurvey(ctx, CreateSurveyRequest{Title: "Onboarding"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	surveys, err := s.ListSurveys(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(surveys) != 2 || surveys[0].ID != first.ID || surveys[0].Title != "Satisfaction" {
		t.Fatalf("unexpected surveys %+v", surveys)
	}
	if surveys[0].CreatedAt.IsZero() {
		t.Fatalf("expected created_at to round-trip")
	}

	got, err := s.GetSurvey(ctx, first.ID)
	if err != nil || got.Description != "Quarterly" {
		t.Fatalf("get: %+v %v", got, err)
	}

	if _, err := s.GetSurvey(ctx, 999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQuestionLifecycle(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	sv, err := s.CreateSurvey(ctx, CreateSurveyRequest{Title: "Satisfaction"})
	if err != nil {
		t.Fatal(err)
	}

	q1, err := s.AddQuestion(ctx, sv.ID, CreateQuestionRequest{Text: "Rate 1-5", Type: TypeScale})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	q2, err := s.AddQuestion(ctx, sv.ID, CreateQuestionRequest{Text: "Comments", Type: TypeText})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if !q1.IsNumeric() || q2.IsNumeric() {
		t.Fatalf("unexpected numeric flags")
	}

	if _, err := s.AddQuestion(ctx, 4040, CreateQuestionRequest{Text: "Orphan", Type: TypeText}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown survey, got %v", err)
	}

	surveyID, err := s.UpdateQuestionText(ctx, q1.ID, UpdateQuestionRequest{Text: "Rate us 1-5"})
	if err != nil || surveyID != sv.ID {
		t.Fatalf("update: survey=%d err=%v", surveyID, err)
	}

	question, parent, siblings, err := s.QuestionContext(ctx, q1.ID)
	if err != nil {
		t.Fatalf("question context: %v", err)
	}
	if question.Text != "Rate us 1-5" || parent.ID != sv.ID || len(siblings) != 2 {
		t.Fatalf("unexpected context %+v %+v %d", question, parent, len(siblings))
	}
	if siblings[0].ID != q1.ID || siblings[1].ID != q2.ID {
		t.Fatalf("expected questions in insertion order")
	}

	surveyID, err = s.DeleteQuestion(ctx, q2.ID)
	if err != nil || surveyID != sv.ID {
		t.Fatalf("delete question: survey=%d err=%v", surveyID, err)
	}
	if _, err := s.DeleteQuestion(ctx, q2.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	if _, err := s.UpdateQuestionText(ctx, q2.ID, UpdateQuestionRequest{Text: "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating deleted question, got %v", err)
	}
}

func TestDeleteSurveyCascades(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	userID := testutil.MustExec(t, db,
		`INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		"User", "user@demo.com", "x", core.RoleUser)

	sv, err := s.CreateSurvey(ctx, CreateSurveyRequest{Title: "Doomed"})
	if err != nil {
		t.Fatal(err)
	}
	keep, err := s.CreateSurvey(ctx, CreateSurveyRequest{Title: "Kept"})
	if err != nil {
		t.Fatal(err)
	}

	q, err := s.AddQuestion(ctx, sv.ID, CreateQuestionRequest{Text: "Rate", Type: TypeScale})
	if err != nil {
		t.Fatal(err)
	}
	kq, err := s.AddQuestion(ctx, keep.ID, CreateQuestionRequest{Text: "Rate", Type: TypeScale})
	if err != nil {
		t.Fatal(err)
	}
	testutil.MustExec(t, db,
		`INSERT INTO answers (question_id, user_id, numeric_value) VALUES (?, ?, ?)`, q.ID, userID, 4)
	testutil.MustExec(t, db,
		`INSERT INTO answers (question_id, user_id, numeric_value) VALUES (?, ?, ?)`, kq.ID, userID, 2)

	if err := s.DeleteSurvey(ctx, sv.ID); err != nil {
		t.Fatalf("delete survey: %v", err)
	}

	if n := testutil.Count(t, db, "questions", "survey_id = ?", sv.ID); n != 0 {
		t.Fatalf("expected questions to cascade, %d left", n)
	}
	if n := testutil.Count(t, db, "answers", "question_id = ?", q.ID); n != 0 {
		t.Fatalf("expected answers to cascade, %d left", n)
	}
	if n := testutil.Count(t, db, "answers", ""); n != 1 {
		t.Fatalf("expected the other survey's answer to survive, got %d", n)
	}

	if err := s.DeleteSurvey(ctx, sv.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Surveys != 1 || counts.Questions != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestDeleteQuestionCascadesAnswers(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	userID := testutil.MustExec(t, db,
		`INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		"User", "user@demo.com", "x", core.RoleUser)

	sv, err := s.CreateSurvey(ctx, CreateSurveyRequest{Title: "S"})
	if err != nil {
		t.Fatal(err)
	}
	q, err := s.AddQuestion(ctx, sv.ID, CreateQuestionRequest{Text: "Why?", Type: TypeText})
	if err != nil {
		t.Fatal(err)
	}
	testutil.MustExec(t, db,
		`INSERT INTO answers (question_id, user_id, text_value) VALUES (?, ?, ?)`, q.ID, userID, "because")

	if _, err := s.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatal(err)
	}
	if n := testutil.Count(t, db, "answers", ""); n != 0 {
		t.Fatalf("expected answers to cascade, %d left", n)
	}
}
