package tryout

import (
	"time"

	"github.com/google/uuid"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/pkg/validators"
)

// Session statuses
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Session is one timed attempt of a package by a user
type Session struct {
	ID            string     `json:"id" validate:"required,uuid4"`
	UserID        string     `json:"user_id" validate:"required,uuid4"`
	PackageID     string     `json:"package_id" validate:"required,uuid4"`
	Status        string     `json:"status" validate:"required,oneof=in_progress completed"`
	StartedAt     time.Time  `json:"started_at" validate:"required"`
	EndsAt        time.Time  `json:"ends_at" validate:"required,gtfield=StartedAt"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CurrentIndex  int        `json:"current_index" validate:"gte=0"`
	ScoreTWK      int        `json:"score_twk"`
	ScoreTIU      int        `json:"score_tiu"`
	ScoreTKP      int        `json:"score_tkp"`
	TotalScore    int        `json:"total_score"`
	Passed        bool       `json:"passed"`
	AutoSubmitted bool       `json:"auto_submitted"`
}

// NewSession starts an attempt of pkg at now
func NewSession(userID string, pkg *catalog.Package, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		PackageID: pkg.ID,
		Status:    StatusInProgress,
		StartedAt: now,
		EndsAt:    now.Add(pkg.Duration()),
	}
}

// Validate for validating Session struct
func (s *Session) Validate() error {
	return validators.Struct(s)
}

func (s *Session) IsCompleted() bool { return s.Status == StatusCompleted }

// IsExpired reports whether an in-progress session has run past its deadline
func (s *Session) IsExpired(now time.Time) bool {
	return s.Status == StatusInProgress && !now.Before(s.EndsAt)
}

// Remaining is the time left before the deadline, never negative
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.IsCompleted() || !now.Before(s.EndsAt) {
		return 0
	}
	return s.EndsAt.Sub(now)
}

// SessionQuery filters a user's tryout history
type SessionQuery struct {
	UserID    string `validate:"required,uuid4"`
	PackageID string `validate:"omitempty,uuid4"`
	Status    string `validate:"omitempty,oneof=in_progress completed"`
	Limit     int    `validate:"gte=0,lte=200"`
	Offset    int    `validate:"gte=0"`
}

// Validate for validating SessionQuery struct
func (q *SessionQuery) Validate() error {
	return validators.Struct(q)
}
