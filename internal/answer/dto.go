// AngelaMos | 2026
// dto.go

package answer

import (
	"github.com/carterperez-dev/surveys/internal/survey"
)

// FormValues is satisfied by url.Values.
type FormValues interface {
	Get(key string) string
}

type SubmitResult struct {
	Saved     int
	Skipped   int
	Malformed int
}

type RespondPage struct {
	Survey survey.Survey
	Rows   []Row
	Scale  []int
}
