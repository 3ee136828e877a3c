package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

// tryoutService implements the TryoutService interface
type tryoutService struct {
	packageRepo  catalog.PackageRepository
	questionRepo catalog.QuestionRepository
	access       catalog.PackageService
	sessionRepo  tryout.SessionRepository
	answerRepo   tryout.AnswerRepository
	tagStatRepo  tryout.TagStatRepository
	now          func() time.Time
	logger       logger.Logger
}

// NewTryoutService creates a new instance of TryoutService
func NewTryoutService(
	packageRepo catalog.PackageRepository,
	questionRepo catalog.QuestionRepository,
	access catalog.PackageService,
	sessionRepo tryout.SessionRepository,
	answerRepo tryout.AnswerRepository,
	tagStatRepo tryout.TagStatRepository,
	logger logger.Logger,
) (tryout.TryoutService, error) {
	return &tryoutService{
		packageRepo:  packageRepo,
		questionRepo: questionRepo,
		access:       access,
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		tagStatRepo:  tagStatRepo,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}, nil
}

// Start resumes the unexpired attempt of the package or opens a new one
func (s *tryoutService) Start(ctx context.Context, actor users.Actor, packageID string) (*tryout.Session, bool, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, false, err
	}
	if !pkg.IsActive {
		return nil, false, tryout.ErrPackageInactive
	}
	if pkg.QuestionCount == 0 {
		return nil, false, tryout.ErrPackageEmpty
	}

	ok, err := s.access.HasAccess(ctx, actor, pkg)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, catalog.ErrNoAccess
	}

	now := s.now()
	current, err := s.sessionRepo.FindInProgress(ctx, actor.UserID, packageID)
	switch {
	case err == nil && !current.IsExpired(now):
		return current, true, nil
	case err == nil:
		if _, err := s.finalize(ctx, current, true); err != nil {
			return nil, false, err
		}
	case !errors.Is(err, tryout.ErrSessionNotFound):
		return nil, false, err
	}

	if pkg.MaxAttempts > 0 {
		done, err := s.sessionRepo.CountCompleted(ctx, actor.UserID, packageID)
		if err != nil {
			return nil, false, err
		}
		if done >= int64(pkg.MaxAttempts) {
			return nil, false, tryout.ErrAttemptLimit
		}
	}

	session := tryout.NewSession(actor.UserID, pkg, now)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if errors.Is(err, tryout.ErrSessionActive) {
			// a concurrent Start opened the session first
			if current, ferr := s.sessionRepo.FindInProgress(ctx, actor.UserID, packageID); ferr == nil {
				return current, true, nil
			}
		}
		return nil, false, fmt.Errorf("failed to start tryout: %w", err)
	}

	s.logger.Info(fmt.Sprintf("User %s started tryout %s of package %s", actor.UserID, session.ID, packageID))
	return session, false, nil
}

// ownSession loads a session that must belong to the actor
func (s *tryoutService) ownSession(ctx context.Context, actor users.Actor, sessionID string) (*tryout.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != actor.UserID {
		return nil, tryout.ErrNotSessionOwner
	}
	return session, nil
}

// readableSession also lets admins look at other users' sessions
func (s *tryoutService) readableSession(ctx context.Context, actor users.Actor, sessionID string) (*tryout.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, tryout.ErrNotSessionOwner
	}
	return session, nil
}

// GetState returns what a client needs to continue an attempt
func (s *tryoutService) GetState(ctx context.Context, actor users.Actor, sessionID string) (*tryout.State, error) {
	session, err := s.ownSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(s.now()) {
		if session, err = s.finalize(ctx, session, true); err != nil {
			return nil, err
		}
	}

	pkg, err := s.packageRepo.GetByID(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListByPackage(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	redacted := make([]*catalog.Question, len(questions))
	for i, q := range questions {
		redacted[i] = q.Redacted()
	}
	for _, a := range answers {
		a.Score, a.IsCorrect = 0, false
	}

	return &tryout.State{
		Session:          session,
		Package:          pkg,
		Questions:        redacted,
		Answers:          answers,
		RemainingSeconds: int64(session.Remaining(s.now()).Seconds()),
	}, nil
}

// SaveAnswer scores and stores one answer of an open attempt
func (s *tryoutService) SaveAnswer(ctx context.Context, actor users.Actor, sessionID string, input *tryout.AnswerInput) (*tryout.Answer, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	session, err := s.ownSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, tryout.ErrSessionCompleted
	}
	now := s.now()
	if session.IsExpired(now) {
		if _, err := s.finalize(ctx, session, true); err != nil {
			return nil, err
		}
		return nil, tryout.ErrSessionExpired
	}

	q, err := s.questionRepo.GetByID(ctx, input.QuestionID)
	if err != nil {
		if errors.Is(err, catalog.ErrQuestionNotFound) {
			return nil, tryout.ErrQuestionMismatch
		}
		return nil, err
	}
	if q.PackageID != session.PackageID {
		return nil, tryout.ErrQuestionMismatch
	}
	if input.SelectedOption != "" {
		if _, ok := q.Option(input.SelectedOption); !ok {
			return nil, tryout.ErrUnknownOption
		}
	}

	score, correct := tryout.ScoreAnswer(q, input.SelectedOption)
	answer := &tryout.Answer{
		SessionID:      session.ID,
		QuestionID:     q.ID,
		SelectedOption: input.SelectedOption,
		Flagged:        input.Flagged,
		Score:          score,
		IsCorrect:      correct,
		AnsweredAt:     now,
	}
	if err := s.answerRepo.Upsert(ctx, answer); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	if input.CurrentIndex != nil {
		if err := s.sessionRepo.UpdateProgress(ctx, session.ID, *input.CurrentIndex); err != nil {
			return nil, err
		}
	}

	answer.Score, answer.IsCorrect = 0, false
	return answer, nil
}

// Submit finishes an attempt; a completed one returns its stored result
func (s *tryoutService) Submit(ctx context.Context, actor users.Actor, sessionID string) (*tryout.Result, error) {
	session, err := s.ownSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsCompleted() {
		if session, err = s.finalize(ctx, session, session.IsExpired(s.now())); err != nil {
			return nil, err
		}
	}
	return s.buildResult(ctx, session)
}

// Result returns the scores of a completed attempt
func (s *tryoutService) Result(ctx context.Context, actor users.Actor, sessionID string) (*tryout.Result, error) {
	session, err := s.readableSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if session, err = s.completed(ctx, session); err != nil {
		return nil, err
	}
	return s.buildResult(ctx, session)
}

// Review pairs every question of a completed attempt with the saved answer
func (s *tryoutService) Review(ctx context.Context, actor users.Actor, sessionID string) ([]*tryout.ReviewItem, error) {
	session, err := s.readableSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}
	if session, err = s.completed(ctx, session); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByPackage(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[string]*tryout.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	items := make([]*tryout.ReviewItem, len(questions))
	for i, q := range questions {
		items[i] = &tryout.ReviewItem{Question: q, Answer: byQuestion[q.ID]}
	}
	return items, nil
}

// History lists the actor's attempts, newest first
func (s *tryoutService) History(ctx context.Context, actor users.Actor, query *tryout.SessionQuery) ([]*tryout.Session, error) {
	query.UserID = actor.UserID
	return s.sessionRepo.List(ctx, query)
}

// Ranking returns the best completed score per user on a package
func (s *tryoutService) Ranking(ctx context.Context, packageID string, limit int) ([]*tryout.RankingEntry, error) {
	if _, err := s.packageRepo.GetByID(ctx, packageID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = tryout.DefaultRankingLimit
	case limit > tryout.MaxRankingLimit:
		limit = tryout.MaxRankingLimit
	}
	return s.sessionRepo.Ranking(ctx, packageID, limit)
}

// TagStats returns the actor's per tag performance, weakest first
func (s *tryoutService) TagStats(ctx context.Context, actor users.Actor) ([]*tryout.TagStat, error) {
	stats, err := s.tagStatRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Accuracy() < stats[j].Accuracy()
	})
	return stats, nil
}

// FinalizeExpired auto submits sessions whose deadline has passed
func (s *tryoutService) FinalizeExpired(ctx context.Context, limit int) (int, error) {
	expired, err := s.sessionRepo.ListExpired(ctx, s.now(), limit)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, session := range expired {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := s.finalize(ctx, session, true); err != nil {
			s.logger.Error(fmt.Sprintf("Failed to submit expired tryout %s: %v", session.ID, err))
			continue
		}
		done++
	}
	return done, nil
}

// completed finalizes an expired attempt and rejects one still running
func (s *tryoutService) completed(ctx context.Context, session *tryout.Session) (*tryout.Session, error) {
	if session.IsCompleted() {
		return session, nil
	}
	if !session.IsExpired(s.now()) {
		return nil, tryout.ErrSessionActive
	}
	return s.finalize(ctx, session, true)
}

// finalize scores an attempt and completes it. When another caller won the
// race the stored session is returned instead.
func (s *tryoutService) finalize(ctx context.Context, session *tryout.Session, auto bool) (*tryout.Session, error) {
	pkg, err := s.packageRepo.GetByID(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListByPackage(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	eval := tryout.Evaluate(pkg, questions, answers)
	scored := make([]*tryout.Answer, 0, len(eval.Answers))
	for _, q := range questions {
		if a, ok := eval.Answers[q.ID]; ok {
			scored = append(scored, a)
		}
	}

	completedAt := s.now()
	if completedAt.After(session.EndsAt) {
		completedAt = session.EndsAt
	}
	finished := *session
	eval.Apply(&finished)
	finished.Status = tryout.StatusCompleted
	finished.CompletedAt = &completedAt
	finished.AutoSubmitted = auto

	won, err := s.sessionRepo.Finalize(ctx, &finished, scored, tryout.TagDeltas(session.UserID, questions, eval.Answers))
	if err != nil {
		return nil, fmt.Errorf("failed to submit tryout: %w", err)
	}
	if !won {
		return s.sessionRepo.GetByID(ctx, session.ID)
	}

	s.logger.Info(fmt.Sprintf("Tryout %s submitted with score %d (auto: %t)", session.ID, finished.TotalScore, auto))
	return &finished, nil
}

func (s *tryoutService) buildResult(ctx context.Context, session *tryout.Session) (*tryout.Result, error) {
	pkg, err := s.packageRepo.GetByID(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.ListByPackage(ctx, session.PackageID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	eval := tryout.Tally(pkg, questions, answers)
	result := &tryout.Result{
		Session:    session,
		Categories: eval.Categories,
		TotalScore: session.TotalScore,
		MaxScore:   eval.MaxScore,
		Passed:     session.Passed,
	}
	if session.CompletedAt != nil {
		result.Duration = session.CompletedAt.Sub(session.StartedAt)
	}
	return result, nil
}
