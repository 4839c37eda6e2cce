// AngelaMos | 2026
// aggregate.go

package results

// Row is one answer of a survey joined with its question and answerer.
// Questions without answers appear once with nil answer fields.
type Row struct {
	QuestionID   int64   `db:"question_id"`
	QuestionText string  `db:"question_text"`
	QuestionType string  `db:"question_type"`
	AnswerID     *int64  `db:"answer_id"`
	NumericValue *int64  `db:"numeric_value"`
	TextValue    *string `db:"text_value"`
	UserName     *string `db:"user_name"`
}

func (r Row) HasAnswer() bool {
	return r.AnswerID != nil
}

func (r Row) Answerer() string {
	if r.UserName == nil {
		return "(deleted user)"
	}
	return *r.UserName
}

type QuestionSummary struct {
	QuestionID int64
	Text       string
	Type       string
	Answers    int
	Numeric    int
	Mean       float64
}

func (q QuestionSummary) HasMean() bool {
	return q.Numeric > 0
}

// Summary holds the chart series and per-question counts. Labels and Means
// are parallel and contain only questions with at least one numeric answer.
type Summary struct {
	Labels    []string
	Means     []float64
	Questions []QuestionSummary
}

// Aggregate groups rows by question id in order of first appearance and
// averages the numeric values of each group. Text answers only count
// towards Answers.
func Aggregate(rows []Row) Summary {
	index := make(map[int64]int)
	sums := make([]int64, 0)
	questions := make([]QuestionSummary, 0)

	for _, r := range rows {
		i, ok := index[r.QuestionID]
		if !ok {
			i = len(questions)
			index[r.QuestionID] = i
			questions = append(questions, QuestionSummary{
				QuestionID: r.QuestionID,
				Text:       r.QuestionText,
				Type:       r.QuestionType,
			})
			sums = append(sums, 0)
		}

		if !r.HasAnswer() {
			continue
		}
		questions[i].Answers++

		if r.NumericValue != nil {
			questions[i].Numeric++
			sums[i] += *r.NumericValue
		}
	}

	s := Summary{
		Labels:    []string{},
		Means:     []float64{},
		Questions: questions,
	}

	for i := range questions {
		if questions[i].Numeric == 0 {
			continue
		}
		questions[i].Mean = float64(sums[i]) / float64(questions[i].Numeric)
		s.Labels = append(s.Labels, questions[i].Text)
		s.Means = append(s.Means, questions[i].Mean)
	}

	return s
}
