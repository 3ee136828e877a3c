//go:build unit
// +build unit

package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newQuestion(category string) *Question {
	return &Question{
		ID:        uuid.NewString(),
		PackageID: uuid.NewString(),
		Category:  category,
		Content:   "Pancasila sebagai dasar negara tercantum dalam?",
		Options: []Option{
			{Key: "A", Text: "Pembukaan UUD 1945"},
			{Key: "B", Text: "Batang tubuh UUD 1945"},
		},
		CorrectOption: "A",
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       func() *Question
		wantErr string
	}{
		{
			name: "valid TWK",
			q:    func() *Question { return newQuestion(CategoryTWK) },
		},
		{
			name:    "unknown category",
			q:       func() *Question { return newQuestion("SKB") },
			wantErr: "category",
		},
		{
			name: "TIU without correct option",
			q: func() *Question {
				q := newQuestion(CategoryTIU)
				q.CorrectOption = ""
				return q
			},
			wantErr: "correct_option",
		},
		{
			name: "correct option not among options",
			q: func() *Question {
				q := newQuestion(CategoryTIU)
				q.CorrectOption = "D"
				return q
			},
			wantErr: "does not exist",
		},
		{
			name: "duplicate keys",
			q: func() *Question {
				q := newQuestion(CategoryTWK)
				q.Options[1].Key = "A"
				return q
			},
			wantErr: "duplicated",
		},
		{
			name: "TKP needs weights",
			q: func() *Question {
				q := newQuestion(CategoryTKP)
				q.CorrectOption = ""
				q.Options[0].Score = 5
				return q
			},
			wantErr: "score between 1 and 5",
		},
		{
			name: "TKP weighted",
			q: func() *Question {
				q := newQuestion(CategoryTKP)
				q.CorrectOption = ""
				q.Options[0].Score = 5
				q.Options[1].Score = 2
				return q
			},
		},
		{
			name: "single option",
			q: func() *Question {
				q := newQuestion(CategoryTWK)
				q.Options = q.Options[:1]
				return q
			},
			wantErr: "options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q().Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestQuestion_BestOption(t *testing.T) {
	q := newQuestion(CategoryTKP)
	q.Options = []Option{{Key: "A", Text: "a", Score: 3}, {Key: "B", Text: "b", Score: 5}, {Key: "C", Text: "c", Score: 5}}
	assert.Equal(t, "B", q.BestOption())

	twk := newQuestion(CategoryTWK)
	assert.Equal(t, "A", twk.BestOption())
}

func TestQuestion_Redacted(t *testing.T) {
	q := newQuestion(CategoryTKP)
	q.Options[0].Score = 4
	q.Explanation = "karena..."

	r := q.Redacted()
	assert.Empty(t, r.CorrectOption)
	assert.Empty(t, r.Explanation)
	assert.Zero(t, r.Options[0].Score)
	assert.Equal(t, 4, q.Options[0].Score, "original must be untouched")
}

func TestPackage_Threshold(t *testing.T) {
	p := &Package{PassingTWK: 65, PassingTIU: 80, PassingTKP: 166}
	assert.Equal(t, 65, p.Threshold(CategoryTWK))
	assert.Equal(t, 80, p.Threshold(CategoryTIU))
	assert.Equal(t, 166, p.Threshold(CategoryTKP))
	assert.Equal(t, 0, p.Threshold("SKB"))
}
