//go:build unit
// +build unit

package tryout

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/catalog"
)

func twk(id string) *catalog.Question {
	return &catalog.Question{
		ID: id, Category: catalog.CategoryTWK, Tag: "pancasila",
		Options:       []catalog.Option{{Key: "A"}, {Key: "B"}, {Key: "C"}},
		CorrectOption: "B",
	}
}

func tiu(id string) *catalog.Question {
	return &catalog.Question{
		ID: id, Category: catalog.CategoryTIU, Tag: "deret",
		Options:       []catalog.Option{{Key: "A"}, {Key: "B"}},
		CorrectOption: "A",
	}
}

func tkp(id string) *catalog.Question {
	return &catalog.Question{
		ID: id, Category: catalog.CategoryTKP,
		Options: []catalog.Option{{Key: "A", Score: 1}, {Key: "B", Score: 3}, {Key: "C", Score: 5}},
	}
}

func answer(questionID, option string) *Answer {
	return &Answer{QuestionID: questionID, SelectedOption: option, AnsweredAt: time.Now()}
}

func TestScoreAnswer(t *testing.T) {
	tests := []struct {
		name        string
		q           *catalog.Question
		selected    string
		wantScore   int
		wantCorrect bool
	}{
		{"TWK correct", twk("q"), "B", 5, true},
		{"TWK wrong", twk("q"), "A", 0, false},
		{"TIU correct", tiu("q"), "A", 5, true},
		{"TKP best", tkp("q"), "C", 5, true},
		{"TKP middle", tkp("q"), "B", 3, false},
		{"TKP lowest", tkp("q"), "A", 1, false},
		{"unanswered", twk("q"), "", 0, false},
		{"unknown option", twk("q"), "E", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, correct := ScoreAnswer(tt.q, tt.selected)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantCorrect, correct)
		})
	}
}

func TestEvaluate_PassRequiresEveryCategory(t *testing.T) {
	pkg := &catalog.Package{PassingTWK: 5, PassingTIU: 5, PassingTKP: 8}
	questions := []*catalog.Question{twk("t1"), twk("t2"), tiu("i1"), tkp("k1"), tkp("k2")}

	t.Run("all thresholds met", func(t *testing.T) {
		eval := Evaluate(pkg, questions, []*Answer{
			answer("t1", "B"), answer("t2", "A"), answer("i1", "A"), answer("k1", "C"), answer("k2", "B"),
		})

		require.Len(t, eval.Categories, 3)
		assert.Equal(t, CategoryResult{Category: "TWK", Score: 5, MaxScore: 10, Questions: 2, Answered: 2, Correct: 1, Threshold: 5, Passed: true}, eval.Categories[0])
		assert.Equal(t, CategoryResult{Category: "TIU", Score: 5, MaxScore: 5, Questions: 1, Answered: 1, Correct: 1, Threshold: 5, Passed: true}, eval.Categories[1])
		assert.Equal(t, CategoryResult{Category: "TKP", Score: 8, MaxScore: 10, Questions: 2, Answered: 2, Correct: 1, Threshold: 8, Passed: true}, eval.Categories[2])
		assert.Equal(t, 18, eval.TotalScore)
		assert.Equal(t, 25, eval.MaxScore)
		assert.True(t, eval.Passed)
	})

	t.Run("one category short", func(t *testing.T) {
		eval := Evaluate(pkg, questions, []*Answer{
			answer("t1", "B"), answer("t2", "B"), answer("i1", "B"), answer("k1", "C"), answer("k2", "C"),
		})

		assert.Equal(t, 10+0+10, eval.TotalScore)
		assert.False(t, eval.Categories[1].Passed)
		assert.False(t, eval.Passed)
	})
}

func TestEvaluate_UnansweredAndFlagged(t *testing.T) {
	pkg := &catalog.Package{}
	questions := []*catalog.Question{twk("t1"), twk("t2")}
	flagged := &Answer{QuestionID: "t2", Flagged: true}

	eval := Evaluate(pkg, questions, []*Answer{flagged})

	require.Len(t, eval.Categories, 1)
	assert.Equal(t, 0, eval.Categories[0].Answered)
	assert.Equal(t, 0, eval.TotalScore)
	assert.True(t, eval.Passed, "zero thresholds are always met")
	assert.Contains(t, eval.Answers, "t2")
}

func TestEvaluate_RescoresStoredAnswers(t *testing.T) {
	stale := answer("t1", "B")
	stale.Score, stale.IsCorrect = 0, false

	eval := Evaluate(&catalog.Package{}, []*catalog.Question{twk("t1")}, []*Answer{stale})

	assert.Equal(t, 5, eval.Answers["t1"].Score)
	assert.True(t, eval.Answers["t1"].IsCorrect)
	assert.Equal(t, 0, stale.Score, "input answers are not mutated")
}

func TestTally_KeepsStoredScores(t *testing.T) {
	scored := answer("t1", "B")
	scored.Score, scored.IsCorrect = 5, true
	edited := twk("t1")
	edited.CorrectOption = "A"

	eval := Tally(&catalog.Package{}, []*catalog.Question{edited}, []*Answer{scored})

	require.Len(t, eval.Categories, 1)
	assert.Equal(t, 5, eval.Categories[0].Score)
	assert.Equal(t, 1, eval.Categories[0].Correct)
	assert.Equal(t, 5, eval.TotalScore)
}

func TestEvaluate_EmptyPackageFails(t *testing.T) {
	eval := Evaluate(&catalog.Package{}, nil, nil)
	assert.False(t, eval.Passed)
	assert.Empty(t, eval.Categories)
}

func TestEvaluate_FullSKDMaximum(t *testing.T) {
	pkg := &catalog.Package{PassingTWK: catalog.DefaultPassingTWK, PassingTIU: catalog.DefaultPassingTIU, PassingTKP: catalog.DefaultPassingTKP}

	var questions []*catalog.Question
	var answers []*Answer
	add := func(n int, mk func(string) *catalog.Question, best string) {
		for i := 0; i < n; i++ {
			q := mk(fmt.Sprintf("%s-%d", best, len(questions)))
			questions = append(questions, q)
			answers = append(answers, answer(q.ID, q.BestOption()))
		}
	}
	add(30, twk, "twk")
	add(35, tiu, "tiu")
	add(45, tkp, "tkp")

	eval := Evaluate(pkg, questions, answers)
	assert.Equal(t, 550, eval.MaxScore)
	assert.Equal(t, 550, eval.TotalScore)
	assert.True(t, eval.Passed)

	s := &Session{}
	eval.Apply(s)
	assert.Equal(t, 150, s.ScoreTWK)
	assert.Equal(t, 175, s.ScoreTIU)
	assert.Equal(t, 225, s.ScoreTKP)
	assert.True(t, s.Passed)
}

func TestTagDeltas(t *testing.T) {
	questions := []*catalog.Question{twk("t1"), twk("t2"), tkp("k1"), tiu("i1")}
	eval := Evaluate(&catalog.Package{}, questions, []*Answer{
		answer("t1", "B"), answer("t2", "A"), answer("k1", "C"), {QuestionID: "i1", Flagged: true},
	})

	deltas := TagDeltas("user-1", questions, eval.Answers)

	require.Len(t, deltas, 2)
	assert.Equal(t, &TagStat{UserID: "user-1", Category: "TKP", Tag: "TKP", Attempts: 1, Correct: 1, TotalScore: 5}, deltas[0])
	assert.Equal(t, &TagStat{UserID: "user-1", Category: "TWK", Tag: "pancasila", Attempts: 2, Correct: 1, TotalScore: 5}, deltas[1])
}

func TestSession_Deadline(t *testing.T) {
	start := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	pkg := &catalog.Package{ID: "p", DurationMinutes: 100}
	s := NewSession("u", pkg, start)

	assert.Equal(t, start.Add(100*time.Minute), s.EndsAt)
	assert.False(t, s.IsExpired(start.Add(99*time.Minute)))
	assert.Equal(t, time.Minute, s.Remaining(start.Add(99*time.Minute)))
	assert.True(t, s.IsExpired(s.EndsAt))
	assert.Zero(t, s.Remaining(s.EndsAt.Add(time.Second)))

	s.Status = StatusCompleted
	assert.False(t, s.IsExpired(s.EndsAt.Add(time.Hour)))
}
