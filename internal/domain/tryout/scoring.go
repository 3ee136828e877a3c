package tryout

import (
	"sort"

	"github.com/turrs/bank-skd/internal/domain/catalog"
)

// PointsPerQuestion is the most a single question can award
const PointsPerQuestion = 5

// CategoryResult is the outcome of one category in a finished session
type CategoryResult struct {
	Category  string `json:"category"`
	Score     int    `json:"score"`
	MaxScore  int    `json:"max_score"`
	Questions int    `json:"questions"`
	Answered  int    `json:"answered"`
	Correct   int    `json:"correct"`
	Threshold int    `json:"threshold"`
	Passed    bool   `json:"passed"`
}

// Evaluation is the scored form of a set of answers against a package
type Evaluation struct {
	Categories []CategoryResult
	TotalScore int
	MaxScore   int
	Passed     bool
	// Answers holds the scored answers keyed by question ID.
	Answers map[string]*Answer
}

// ScoreAnswer grades selected for q. TWK and TIU award 5 for the correct
// option and 0 otherwise. TKP awards the weight of the chosen option and
// counts the highest weighted option as correct. Unanswered scores 0.
func ScoreAnswer(q *catalog.Question, selected string) (int, bool) {
	if selected == "" {
		return 0, false
	}
	opt, ok := q.Option(selected)
	if !ok {
		return 0, false
	}
	if q.Category == catalog.CategoryTKP {
		return opt.Score, selected == q.BestOption()
	}
	if selected == q.CorrectOption {
		return PointsPerQuestion, true
	}
	return 0, false
}

// Evaluate scores answers against the package questions. A session passes
// only when every category present in the package meets its threshold.
func Evaluate(pkg *catalog.Package, questions []*catalog.Question, answers []*Answer) *Evaluation {
	return tally(pkg, questions, answers, func(q *catalog.Question, a *Answer) (int, bool) {
		return ScoreAnswer(q, a.SelectedOption)
	})
}

// Tally summarizes answers that were scored when the session completed. Later
// edits to the answer key do not change the breakdown.
func Tally(pkg *catalog.Package, questions []*catalog.Question, answers []*Answer) *Evaluation {
	return tally(pkg, questions, answers, func(_ *catalog.Question, a *Answer) (int, bool) {
		return a.Score, a.IsCorrect
	})
}

func tally(pkg *catalog.Package, questions []*catalog.Question, answers []*Answer, grade func(*catalog.Question, *Answer) (int, bool)) *Evaluation {
	byQuestion := make(map[string]*Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	results := make(map[string]*CategoryResult, len(catalog.Categories))
	for _, c := range catalog.Categories {
		results[c] = &CategoryResult{Category: c, Threshold: pkg.Threshold(c)}
	}

	eval := &Evaluation{Answers: make(map[string]*Answer, len(answers))}
	for _, q := range questions {
		r, ok := results[q.Category]
		if !ok {
			continue
		}
		r.Questions++
		r.MaxScore += PointsPerQuestion

		a, answered := byQuestion[q.ID]
		if !answered {
			continue
		}
		score, correct := grade(q, a)
		scored := *a
		scored.Score, scored.IsCorrect = score, correct
		eval.Answers[q.ID] = &scored

		if a.SelectedOption != "" {
			r.Answered++
		}
		if correct {
			r.Correct++
		}
		r.Score += score
	}

	eval.Passed = true
	present := 0
	for _, c := range catalog.Categories {
		r := results[c]
		if r.Questions == 0 {
			continue
		}
		present++
		r.Passed = r.Score >= r.Threshold
		if !r.Passed {
			eval.Passed = false
		}
		eval.TotalScore += r.Score
		eval.MaxScore += r.MaxScore
		eval.Categories = append(eval.Categories, *r)
	}
	if present == 0 {
		eval.Passed = false
	}
	return eval
}

// Apply copies the evaluation totals onto s
func (e *Evaluation) Apply(s *Session) {
	s.ScoreTWK, s.ScoreTIU, s.ScoreTKP = 0, 0, 0
	for _, r := range e.Categories {
		switch r.Category {
		case catalog.CategoryTWK:
			s.ScoreTWK = r.Score
		case catalog.CategoryTIU:
			s.ScoreTIU = r.Score
		case catalog.CategoryTKP:
			s.ScoreTKP = r.Score
		}
	}
	s.TotalScore = e.TotalScore
	s.Passed = e.Passed
}

// TagDeltas folds scored answers into per tag increments for userID.
// Questions without a tag are grouped under their category name.
func TagDeltas(userID string, questions []*catalog.Question, scored map[string]*Answer) []*TagStat {
	deltas := make(map[string]*TagStat)
	for _, q := range questions {
		a, ok := scored[q.ID]
		if !ok || a.SelectedOption == "" {
			continue
		}
		tag := q.Tag
		if tag == "" {
			tag = q.Category
		}
		key := q.Category + "/" + tag
		d, ok := deltas[key]
		if !ok {
			d = &TagStat{UserID: userID, Category: q.Category, Tag: tag}
			deltas[key] = d
		}
		d.Attempts++
		d.TotalScore += a.Score
		if a.IsCorrect {
			d.Correct++
		}
	}

	out := make([]*TagStat, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
