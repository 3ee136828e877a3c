//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

type tryoutFixture struct {
	services  *TestServices
	player    *users.User
	pkg       *catalog.Package
	questions []*catalog.Question
	clock     time.Time
}

// newTryoutFixture prepares a free package with two questions per category
// and pins the service clock to a movable instant.
func newTryoutFixture(t *testing.T) *tryoutFixture {
	services := SetupTestServices(t, config.SqliteDbType)
	mentor := services.DBContext.CreateTestUser(t, users.RoleMentor)
	pkg, questions := services.DBContext.CreateTestPackage(t, mentor.ID, 0, 2)

	f := &tryoutFixture{
		services:  services,
		player:    services.DBContext.CreateTestUser(t, users.RoleUser),
		pkg:       pkg,
		questions: questions,
		clock:     time.Now().UTC().Truncate(time.Second),
	}
	services.SetClock(func() time.Time { return f.clock })
	return f
}

func (f *tryoutFixture) answerAll(t *testing.T, sessionID string, pick func(q *catalog.Question) string) {
	ctx := context.Background()
	for _, q := range f.questions {
		_, err := f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), sessionID, &tryout.AnswerInput{
			QuestionID:     q.ID,
			SelectedOption: pick(q),
		})
		require.NoError(t, err)
	}
}

func TestTryoutService_Start_ResumesUntilDeadline(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	first, resumed, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, f.clock.Add(100*time.Minute), first.EndsAt)

	f.clock = f.clock.Add(30 * time.Minute)
	again, resumed, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.Equal(t, first.ID, again.ID)

	f.clock = first.EndsAt.Add(time.Second)
	fresh, resumed, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.NotEqual(t, first.ID, fresh.ID)

	old, err := f.services.DBContext.SessionRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, old.IsCompleted())
	assert.True(t, old.AutoSubmitted)
	assert.Equal(t, first.EndsAt, old.CompletedAt.UTC())
}

func TestTryoutService_Start_Preconditions(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	mentor := services.DBContext.CreateTestUser(t, users.RoleMentor)
	player := services.DBContext.CreateTestUser(t, users.RoleUser)

	t.Run("package without questions", func(t *testing.T) {
		pkg := testutil.NewTestPackage(mentor.ID, 0)
		require.NoError(t, services.DBContext.PackageRepo.Create(ctx, pkg))

		_, _, err := services.TryoutService.Start(ctx, player.Actor(), pkg.ID)
		assert.ErrorIs(t, err, tryout.ErrPackageEmpty)
	})

	t.Run("inactive package", func(t *testing.T) {
		pkg, _ := services.DBContext.CreateTestPackage(t, mentor.ID, 0, 1)
		pkg.IsActive = false
		require.NoError(t, services.DBContext.PackageRepo.UpdateByID(ctx, pkg))

		_, _, err := services.TryoutService.Start(ctx, player.Actor(), pkg.ID)
		assert.ErrorIs(t, err, tryout.ErrPackageInactive)
	})

	t.Run("paid package not bought", func(t *testing.T) {
		pkg, _ := services.DBContext.CreateTestPackage(t, mentor.ID, 50000, 1)

		_, _, err := services.TryoutService.Start(ctx, player.Actor(), pkg.ID)
		assert.ErrorIs(t, err, catalog.ErrNoAccess)

		_, _, err = services.TryoutService.Start(ctx, mentor.Actor(), pkg.ID)
		assert.NoError(t, err, "creators take their own packages")
	})

	t.Run("attempt limit", func(t *testing.T) {
		pkg := testutil.NewTestPackage(mentor.ID, 0)
		pkg.MaxAttempts = 1
		require.NoError(t, services.DBContext.PackageRepo.Create(ctx, pkg))
		require.NoError(t, services.DBContext.QuestionRepo.CreateBatch(ctx, testutil.NewTestQuestionSet(pkg.ID, 1)))

		session, _, err := services.TryoutService.Start(ctx, player.Actor(), pkg.ID)
		require.NoError(t, err)
		_, err = services.TryoutService.Submit(ctx, player.Actor(), session.ID)
		require.NoError(t, err)

		_, _, err = services.TryoutService.Start(ctx, player.Actor(), pkg.ID)
		assert.ErrorIs(t, err, tryout.ErrAttemptLimit)
	})
}

func TestTryoutService_SubmitScoresEveryCategory(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	session, _, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)

	// best option everywhere except the second TKP question, which gets weight 3
	f.answerAll(t, session.ID, func(q *catalog.Question) string {
		if q.ID == f.questions[5].ID {
			return "C"
		}
		return q.BestOption()
	})

	state, err := f.services.TryoutService.GetState(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	require.Len(t, state.Questions, 6)
	assert.Empty(t, state.Questions[0].CorrectOption)
	assert.Zero(t, state.Questions[4].Options[0].Score)
	assert.Len(t, state.Answers, 6)
	assert.Equal(t, int64(100*60), state.RemainingSeconds)

	f.clock = f.clock.Add(42 * time.Minute)
	result, err := f.services.TryoutService.Submit(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)

	require.Len(t, result.Categories, 3)
	assert.Equal(t, 10, result.Categories[0].Score)
	assert.Equal(t, 10, result.Categories[1].Score)
	assert.Equal(t, 8, result.Categories[2].Score)
	assert.Equal(t, 1, result.Categories[2].Correct)
	assert.Equal(t, 28, result.TotalScore)
	assert.Equal(t, 30, result.MaxScore)
	assert.False(t, result.Passed, "default thresholds are far above a six question package")
	assert.Equal(t, 42*time.Minute, result.Duration)
	assert.False(t, result.Session.AutoSubmitted)

	again, err := f.services.TryoutService.Submit(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.TotalScore, again.TotalScore)

	stats, err := f.services.TryoutService.TagStats(ctx, f.player.Actor())
	require.NoError(t, err)
	require.Len(t, stats, 6)
	assert.Equal(t, "TKP-tag-1", stats[0].Tag, "weakest tag first")
	for _, s := range stats {
		assert.Equal(t, 1, s.Attempts, "submitting twice folds answers once")
	}

	review, err := f.services.TryoutService.Review(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	require.Len(t, review, 6)
	assert.Equal(t, "A", review[0].Question.CorrectOption)
	assert.Equal(t, 5, review[0].Answer.Score)
	assert.Equal(t, 3, review[5].Answer.Score)

	ranking, err := f.services.TryoutService.Ranking(ctx, f.pkg.ID, 10)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, f.player.ID, ranking[0].UserID)
	assert.Equal(t, 28, ranking[0].BestScore)
}

func TestTryoutService_SaveAnswer_Rules(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	session, _, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)

	t.Run("other user's session", func(t *testing.T) {
		stranger := f.services.DBContext.CreateTestUser(t, users.RoleUser)
		_, err := f.services.TryoutService.SaveAnswer(ctx, stranger.Actor(), session.ID, &tryout.AnswerInput{QuestionID: f.questions[0].ID, SelectedOption: "A"})
		assert.ErrorIs(t, err, tryout.ErrNotSessionOwner)
	})

	t.Run("question from another package", func(t *testing.T) {
		_, others := f.services.DBContext.CreateTestPackage(t, f.pkg.CreatedBy, 0, 1)
		_, err := f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), session.ID, &tryout.AnswerInput{QuestionID: others[0].ID, SelectedOption: "A"})
		assert.ErrorIs(t, err, tryout.ErrQuestionMismatch)
	})

	t.Run("option missing on question", func(t *testing.T) {
		short := testutil.NewTestQuestion(f.pkg.ID, catalog.CategoryTWK, "", 99)
		short.Options = short.Options[:2]
		require.NoError(t, f.services.DBContext.QuestionRepo.Create(ctx, short))

		_, err := f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), session.ID, &tryout.AnswerInput{QuestionID: short.ID, SelectedOption: "D"})
		assert.ErrorIs(t, err, tryout.ErrUnknownOption)
	})

	t.Run("clearing keeps the flag", func(t *testing.T) {
		index := 3
		_, err := f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), session.ID, &tryout.AnswerInput{QuestionID: f.questions[0].ID, SelectedOption: "A"})
		require.NoError(t, err)
		saved, err := f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), session.ID, &tryout.AnswerInput{QuestionID: f.questions[0].ID, Flagged: true, CurrentIndex: &index})
		require.NoError(t, err)
		assert.Empty(t, saved.SelectedOption)
		assert.True(t, saved.Flagged)

		state, err := f.services.TryoutService.GetState(ctx, f.player.Actor(), session.ID)
		require.NoError(t, err)
		require.Len(t, state.Answers, 1)
		assert.True(t, state.Answers[0].Flagged)
		assert.Equal(t, 3, state.Session.CurrentIndex)
	})

	t.Run("after the deadline", func(t *testing.T) {
		f.clock = session.EndsAt
		_, err := f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), session.ID, &tryout.AnswerInput{QuestionID: f.questions[1].ID, SelectedOption: "A"})
		assert.ErrorIs(t, err, tryout.ErrSessionExpired)

		stored, err := f.services.DBContext.SessionRepo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsCompleted())
		assert.True(t, stored.AutoSubmitted)

		_, err = f.services.TryoutService.SaveAnswer(ctx, f.player.Actor(), session.ID, &tryout.AnswerInput{QuestionID: f.questions[1].ID, SelectedOption: "A"})
		assert.ErrorIs(t, err, tryout.ErrSessionCompleted)
	})
}

func TestTryoutService_ResultAndReviewNeedCompletion(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	session, _, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)

	_, err = f.services.TryoutService.Result(ctx, f.player.Actor(), session.ID)
	assert.ErrorIs(t, err, tryout.ErrSessionActive)
	_, err = f.services.TryoutService.Review(ctx, f.player.Actor(), session.ID)
	assert.ErrorIs(t, err, tryout.ErrSessionActive)

	f.clock = session.EndsAt.Add(time.Minute)
	result, err := f.services.TryoutService.Result(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	assert.True(t, result.Session.AutoSubmitted)
	assert.Zero(t, result.TotalScore)
	assert.Equal(t, 100*time.Minute, result.Duration)
}

func TestTryoutService_ResultIgnoresLaterKeyEdits(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	session, _, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)
	f.answerAll(t, session.ID, func(q *catalog.Question) string { return q.BestOption() })
	submitted, err := f.services.TryoutService.Submit(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	require.Equal(t, 30, submitted.TotalScore)

	edited := f.questions[0]
	require.Equal(t, catalog.CategoryTWK, edited.Category)
	edited.CorrectOption = "B"
	require.NoError(t, f.services.DBContext.QuestionRepo.UpdateByID(ctx, edited))

	result, err := f.services.TryoutService.Result(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, result.TotalScore)
	sum := 0
	for _, c := range result.Categories {
		sum += c.Score
	}
	assert.Equal(t, result.TotalScore, sum, "category breakdown matches the stored total")
	assert.Equal(t, 10, result.Categories[0].Score)
	assert.Equal(t, 2, result.Categories[0].Correct)
}

func TestTryoutService_RankingDefaultsToTen(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	for i := 0; i < tryout.DefaultRankingLimit+2; i++ {
		player := f.services.DBContext.CreateTestUser(t, users.RoleUser)
		session, _, err := f.services.TryoutService.Start(ctx, player.Actor(), f.pkg.ID)
		require.NoError(t, err)
		_, err = f.services.TryoutService.Submit(ctx, player.Actor(), session.ID)
		require.NoError(t, err)
	}

	ranking, err := f.services.TryoutService.Ranking(ctx, f.pkg.ID, 0)
	require.NoError(t, err)
	assert.Len(t, ranking, tryout.DefaultRankingLimit)

	ranking, err = f.services.TryoutService.Ranking(ctx, f.pkg.ID, 1000)
	require.NoError(t, err)
	assert.Len(t, ranking, tryout.DefaultRankingLimit+2)
}

func TestTryoutService_FinalizeExpiredOnce(t *testing.T) {
	f := newTryoutFixture(t)
	ctx := context.Background()

	session, _, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)
	f.answerAll(t, session.ID, func(q *catalog.Question) string { return q.BestOption() })

	done, err := f.services.TryoutService.FinalizeExpired(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, done)

	f.clock = session.EndsAt.Add(time.Second)
	done, err = f.services.TryoutService.FinalizeExpired(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	result, err := f.services.TryoutService.Submit(ctx, f.player.Actor(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, result.TotalScore)
	assert.True(t, result.Session.AutoSubmitted)

	stats, err := f.services.TryoutService.TagStats(ctx, f.player.Actor())
	require.NoError(t, err)
	for _, s := range stats {
		assert.Equal(t, 1, s.Attempts)
	}
}

func TestSessionExpiryWorker_StopsOnCancel(t *testing.T) {
	f := newTryoutFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	session, _, err := f.services.TryoutService.Start(ctx, f.player.Actor(), f.pkg.ID)
	require.NoError(t, err)
	f.clock = session.EndsAt.Add(time.Second)

	worker, err := NewSessionExpiryWorker(f.services.TryoutService, config.TryoutSettings{
		ExpiryScanInterval: time.Second,
		ExpiryBatchSize:    1,
	}, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool {
		stored, err := f.services.DBContext.SessionRepo.GetByID(context.Background(), session.ID)
		return err == nil && stored.IsCompleted()
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
