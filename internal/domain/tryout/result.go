package tryout

import (
	"time"

	"github.com/turrs/bank-skd/internal/domain/catalog"
)

// State is what a client needs to render an attempt in progress
type State struct {
	Session          *Session
	Package          *catalog.Package
	Questions        []*catalog.Question
	Answers          []*Answer
	RemainingSeconds int64
}

// Result summarises a completed session
type Result struct {
	Session    *Session
	Categories []CategoryResult
	TotalScore int
	MaxScore   int
	Passed     bool
	Duration   time.Duration
}

// ReviewItem pairs a question, answer key included, with what the user chose
type ReviewItem struct {
	Question *catalog.Question
	Answer   *Answer
}

// Ranking page sizes
const (
	DefaultRankingLimit = 10
	MaxRankingLimit     = 100
)

// RankingEntry is a user's best completed score on a package
type RankingEntry struct {
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	BestScore  int    `json:"best_score"`
	Attempts   int    `json:"attempts"`
	EverPassed bool   `json:"ever_passed"`
}
