package catalog

import (
	"fmt"

	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Option is one answer choice of a question
type Option struct {
	Key   string `json:"key" validate:"required,optionkey"`
	Text  string `json:"text" validate:"required,max=1000"`
	Score int    `json:"score" validate:"gte=0,lte=5"`
}

// Question entity
type Question struct {
	ID            string   `json:"id" validate:"required,uuid4"`
	PackageID     string   `json:"package_id" validate:"required,uuid4"`
	Category      string   `json:"category" validate:"required,skdcategory"`
	Tag           string   `json:"tag" validate:"max=100"`
	Content       string   `json:"content" validate:"required,max=5000"`
	ImageMediaID  *string  `json:"image_media_id" validate:"omitempty,uuid4"`
	Options       []Option `json:"options" validate:"required,min=2,max=5,dive"`
	CorrectOption string   `json:"correct_option" validate:"omitempty,optionkey"`
	Explanation   string   `json:"explanation" validate:"max=5000"`
	Position      int      `json:"position" validate:"gte=0"`
}

// Validate checks field rules and the option rules of the question category:
// option keys are unique, TWK and TIU name an existing correct option, and
// every TKP option is weighted 1 to 5.
func (q *Question) Validate() error {
	if err := validators.Struct(q); err != nil {
		return err
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o.Key] {
			return validators.Field("options", fmt.Sprintf("option %s is duplicated", o.Key))
		}
		seen[o.Key] = true
	}

	if q.Category == CategoryTKP {
		for _, o := range q.Options {
			if o.Score < 1 {
				return validators.Field("options", fmt.Sprintf("option %s needs a score between 1 and 5", o.Key))
			}
		}
		return nil
	}

	if q.CorrectOption == "" {
		return validators.Field("correct_option", "correct_option is required")
	}
	if !seen[q.CorrectOption] {
		return validators.Field("correct_option", fmt.Sprintf("option %s does not exist", q.CorrectOption))
	}
	return nil
}

// Option looks up an option by key
func (q *Question) Option(key string) (Option, bool) {
	for _, o := range q.Options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// BestOption returns the correct option for TWK and TIU, and the highest
// weighted option for TKP (first one wins on ties).
func (q *Question) BestOption() string {
	if q.Category != CategoryTKP {
		return q.CorrectOption
	}
	best, bestScore := "", -1
	for _, o := range q.Options {
		if o.Score > bestScore {
			best, bestScore = o.Key, o.Score
		}
	}
	return best
}

// Redacted returns a copy without anything that gives the answer away
func (q *Question) Redacted() *Question {
	c := *q
	c.CorrectOption = ""
	c.Explanation = ""
	c.Options = make([]Option, len(q.Options))
	for i, o := range q.Options {
		c.Options[i] = Option{Key: o.Key, Text: o.Text}
	}
	return &c
}
