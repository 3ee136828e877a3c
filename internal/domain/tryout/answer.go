package tryout

import (
	"time"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Answer is the saved choice for one question of a session. An empty
// SelectedOption with Flagged set marks a question the user is unsure about.
type Answer struct {
	ID             string    `json:"id" validate:"required,uuid4"`
	SessionID      string    `json:"session_id" validate:"required,uuid4"`
	QuestionID     string    `json:"question_id" validate:"required,uuid4"`
	SelectedOption string    `json:"selected_option" validate:"omitempty,optionkey"`
	Flagged        bool      `json:"flagged"`
	Score          int       `json:"score" validate:"gte=0,lte=5"`
	IsCorrect      bool      `json:"is_correct"`
	AnsweredAt     time.Time `json:"answered_at" validate:"required"`
}

// Validate for validating Answer struct
func (a *Answer) Validate() error {
	return validators.Struct(a)
}

// AnswerInput is what a client sends while taking a tryout
type AnswerInput struct {
	QuestionID     string `json:"question_id" validate:"required,uuid4"`
	SelectedOption string `json:"selected_option" validate:"omitempty,optionkey"`
	Flagged        bool   `json:"flagged"`
	CurrentIndex   *int   `json:"current_index" validate:"omitempty,gte=0"`
}

// Validate for validating AnswerInput struct
func (in *AnswerInput) Validate() error {
	return validators.Struct(in)
}

// TagStat accumulates a user's performance on one question tag
type TagStat struct {
	UserID     string    `json:"user_id"`
	Category   string    `json:"category"`
	Tag        string    `json:"tag"`
	Attempts   int       `json:"attempts"`
	Correct    int       `json:"correct"`
	TotalScore int       `json:"total_score"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Accuracy is the share of attempts answered with the best option
func (t *TagStat) Accuracy() float64 {
	if t.Attempts == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempts)
}
