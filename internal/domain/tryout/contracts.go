package tryout

import (
	"context"
	"time"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// TryoutService runs the exam session state machine.
type TryoutService interface {
	// Start resumes the caller's unexpired in-progress session of the package or starts a new one.
	// The boolean is true when an existing session was resumed.
	Start(ctx context.Context, actor users.Actor, packageID string) (*Session, bool, error)
	// GetState returns the session with its redacted questions and saved answers.
	GetState(ctx context.Context, actor users.Actor, sessionID string) (*State, error)
	// SaveAnswer stores one answer. After the deadline the session is submitted and ErrSessionExpired returned.
	SaveAnswer(ctx context.Context, actor users.Actor, sessionID string, input *AnswerInput) (*Answer, error)
	// Submit finishes the session. Submitting a completed session returns its stored result.
	Submit(ctx context.Context, actor users.Actor, sessionID string) (*Result, error)
	Result(ctx context.Context, actor users.Actor, sessionID string) (*Result, error)
	// Review lists every question with the answer key; completed sessions only.
	Review(ctx context.Context, actor users.Actor, sessionID string) ([]*ReviewItem, error)
	History(ctx context.Context, actor users.Actor, query *SessionQuery) ([]*Session, error)
	Ranking(ctx context.Context, packageID string, limit int) ([]*RankingEntry, error)
	// TagStats returns the caller's per tag performance, weakest first.
	TagStats(ctx context.Context, actor users.Actor) ([]*TagStat, error)
	// FinalizeExpired submits up to limit sessions whose deadline has passed.
	FinalizeExpired(ctx context.Context, limit int) (int, error)
}

// SessionRepository defines the interface for Session-related operations
type SessionRepository interface {
	// Create returns ErrSessionActive when the user already has an open
	// session on the package.
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, sessionID string) (*Session, error)
	// FindInProgress returns the in-progress session of user for package or ErrSessionNotFound.
	FindInProgress(ctx context.Context, userID, packageID string) (*Session, error)
	CountCompleted(ctx context.Context, userID, packageID string) (int64, error)
	List(ctx context.Context, query *SessionQuery) ([]*Session, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*Session, error)
	UpdateProgress(ctx context.Context, sessionID string, currentIndex int) error
	// Finalize moves the session from in_progress to completed, stores the scored
	// answers and accumulates tag stats in one transaction. It returns false when
	// another caller completed the session first.
	Finalize(ctx context.Context, session *Session, answers []*Answer, stats []*TagStat) (bool, error)
	Ranking(ctx context.Context, packageID string, limit int) ([]*RankingEntry, error)
}

// AnswerRepository defines the interface for Answer-related operations
type AnswerRepository interface {
	// Upsert inserts or replaces the answer of a (session, question) pair. It
	// fails with ErrSessionCompleted or ErrSessionExpired once the session is
	// closed, checked under the same row lock Finalize takes.
	Upsert(ctx context.Context, answer *Answer) error
	ListBySession(ctx context.Context, sessionID string) ([]*Answer, error)
}

// TagStatRepository defines the interface for TagStat-related operations
type TagStatRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*TagStat, error)
}
