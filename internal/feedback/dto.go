package feedback

import (
	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/core/common/validation"
)

type SubmitDTO struct {
	Score               int    `json:"overallScore" validate:"min=1,max=10"`
	Strengths           string `json:"strengths" validate:"mintrim=10"`
	AreasForImprovement string `json:"areasForImprovement" validate:"mintrim=10"`
}

func (d SubmitDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"overallScore.min":            "Score must be at least 1",
		"overallScore.max":            "Score must be at most 10",
		"strengths.mintrim":           "Please provide at least 10 characters",
		"areasForImprovement.mintrim": "Please provide at least 10 characters",
	}
}

func (d SubmitDTO) Validate() *internal.AppError {
	return validation.Struct(d)
}

// Form describes the submission form for page models.
type Form struct {
	Action   string `json:"action"`
	MinScore int    `json:"minScore"`
	MaxScore int    `json:"maxScore"`
	MinChars int    `json:"minChars"`
}

func NewForm(action string) *Form {
	return &Form{Action: action, MinScore: 1, MaxScore: 10, MinChars: 10}
}
