//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/tryout"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
)

func startTestSession(t *testing.T, tc *TestContext, userID string, pkg *catalog.Package, startedAt time.Time) *tryout.Session {
	t.Helper()

	s := tryout.NewSession(userID, pkg, startedAt)
	require.NoError(t, tc.SessionRepo.Create(context.Background(), s))
	return s
}

func answerFor(sessionID, questionID, option string) *tryout.Answer {
	return &tryout.Answer{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		QuestionID:     questionID,
		SelectedOption: option,
		AnsweredAt:     time.Now().UTC(),
	}
}

func TestSessionSqliteRepository_FindInProgress(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	user := tc.CreateTestUser(t, users.RoleUser)
	pkg, _ := tc.CreateTestPackage(t, admin.ID, 0, 1)

	_, err := tc.SessionRepo.FindInProgress(ctx, user.ID, pkg.ID)
	assert.ErrorIs(t, err, tryout.ErrSessionNotFound)

	s := startTestSession(t, tc, user.ID, pkg, time.Now().UTC())
	found, err := tc.SessionRepo.FindInProgress(ctx, user.ID, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)

	require.NoError(t, tc.SessionRepo.UpdateProgress(ctx, s.ID, 2))
	found, err = tc.SessionRepo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.CurrentIndex)
}

func TestAnswerSqliteRepository_UpsertReplaces(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	user := tc.CreateTestUser(t, users.RoleUser)
	pkg, questions := tc.CreateTestPackage(t, admin.ID, 0, 1)
	s := startTestSession(t, tc, user.ID, pkg, time.Now().UTC())

	require.NoError(t, tc.AnswerRepo.Upsert(ctx, answerFor(s.ID, questions[0].ID, "B")))
	second := answerFor(s.ID, questions[0].ID, "A")
	second.Flagged = true
	require.NoError(t, tc.AnswerRepo.Upsert(ctx, second))

	answers, err := tc.AnswerRepo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "A", answers[0].SelectedOption)
	assert.True(t, answers[0].Flagged)
}

func TestSessionSqliteRepository_OneOpenSessionPerPackage(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	user := tc.CreateTestUser(t, users.RoleUser)
	pkg, _ := tc.CreateTestPackage(t, admin.ID, 0, 1)
	first := startTestSession(t, tc, user.ID, pkg, time.Now().UTC())

	err := tc.SessionRepo.Create(ctx, tryout.NewSession(user.ID, pkg, time.Now().UTC()))
	assert.ErrorIs(t, err, tryout.ErrSessionActive)

	now := time.Now().UTC()
	first.CompletedAt = &now
	won, err := tc.SessionRepo.Finalize(ctx, first, nil, nil)
	require.NoError(t, err)
	require.True(t, won)

	startTestSession(t, tc, user.ID, pkg, time.Now().UTC())
}

func TestAnswerSqliteRepository_UpsertRejectsClosedSession(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	user := tc.CreateTestUser(t, users.RoleUser)
	pkg, questions := tc.CreateTestPackage(t, admin.ID, 0, 1)

	t.Run("finalized", func(t *testing.T) {
		s := startTestSession(t, tc, user.ID, pkg, time.Now().UTC())
		now := time.Now().UTC()
		s.CompletedAt = &now
		won, err := tc.SessionRepo.Finalize(ctx, s, nil, nil)
		require.NoError(t, err)
		require.True(t, won)

		err = tc.AnswerRepo.Upsert(ctx, answerFor(s.ID, questions[0].ID, "A"))
		assert.ErrorIs(t, err, tryout.ErrSessionCompleted)

		answers, err := tc.AnswerRepo.ListBySession(ctx, s.ID)
		require.NoError(t, err)
		assert.Empty(t, answers)
	})

	t.Run("past the deadline", func(t *testing.T) {
		s := startTestSession(t, tc, user.ID, pkg, time.Now().UTC().Add(-3*time.Hour))

		err := tc.AnswerRepo.Upsert(ctx, answerFor(s.ID, questions[0].ID, "A"))
		assert.ErrorIs(t, err, tryout.ErrSessionExpired)
	})

	t.Run("unknown session", func(t *testing.T) {
		err := tc.AnswerRepo.Upsert(ctx, answerFor(uuid.NewString(), questions[0].ID, "A"))
		assert.ErrorIs(t, err, tryout.ErrSessionNotFound)
	})
}

func TestSessionSqliteRepository_Finalize_OnlyOnce(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	user := tc.CreateTestUser(t, users.RoleUser)
	pkg, questions := tc.CreateTestPackage(t, admin.ID, 0, 1)
	s := startTestSession(t, tc, user.ID, pkg, time.Now().UTC())

	var saved []*tryout.Answer
	for _, q := range questions {
		a := answerFor(s.ID, q.ID, "A")
		require.NoError(t, tc.AnswerRepo.Upsert(ctx, a))
		saved = append(saved, a)
	}

	eval := tryout.Evaluate(pkg, questions, saved)
	eval.Apply(s)
	now := time.Now().UTC()
	s.CompletedAt = &now
	var scored []*tryout.Answer
	for _, a := range eval.Answers {
		scored = append(scored, a)
	}
	stats := tryout.TagDeltas(user.ID, questions, eval.Answers)

	won, err := tc.SessionRepo.Finalize(ctx, s, scored, stats)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = tc.SessionRepo.Finalize(ctx, s, scored, stats)
	require.NoError(t, err)
	assert.False(t, won)

	stored, err := tc.SessionRepo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, tryout.StatusCompleted, stored.Status)
	assert.Equal(t, 15, stored.TotalScore)

	answers, err := tc.AnswerRepo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	for _, a := range answers {
		assert.Equal(t, 5, a.Score)
		assert.True(t, a.IsCorrect)
	}

	tags, err := tc.TagStatRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	for _, tag := range tags {
		assert.Equal(t, 1, tag.Attempts, "stats are folded once")
	}

	count, err := tc.SessionRepo.CountCompleted(ctx, user.ID, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSessionSqliteRepository_ListExpired(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	user := tc.CreateTestUser(t, users.RoleUser)
	pkg, _ := tc.CreateTestPackage(t, admin.ID, 0, 1)

	other := tc.CreateTestUser(t, users.RoleUser)

	now := time.Now().UTC()
	old := startTestSession(t, tc, user.ID, pkg, now.Add(-3*time.Hour))
	startTestSession(t, tc, other.ID, pkg, now)

	expired, err := tc.SessionRepo.ListExpired(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, old.ID, expired[0].ID)
}

func TestSessionSqliteRepository_Ranking(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	alice := tc.CreateTestUser(t, users.RoleUser)
	bob := tc.CreateTestUser(t, users.RoleUser)
	pkg, _ := tc.CreateTestPackage(t, admin.ID, 0, 1)

	complete := func(userID string, total int, passed bool) {
		s := startTestSession(t, tc, userID, pkg, time.Now().UTC())
		now := time.Now().UTC()
		s.CompletedAt = &now
		s.TotalScore = total
		s.Passed = passed
		won, err := tc.SessionRepo.Finalize(ctx, s, nil, nil)
		require.NoError(t, err)
		require.True(t, won)
	}
	complete(alice.ID, 300, false)
	complete(alice.ID, 350, true)
	complete(bob.ID, 320, false)

	ranking, err := tc.SessionRepo.Ranking(ctx, pkg.ID, 10)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, alice.ID, ranking[0].UserID)
	assert.Equal(t, 350, ranking[0].BestScore)
	assert.Equal(t, 2, ranking[0].Attempts)
	assert.True(t, ranking[0].EverPassed)
	assert.Equal(t, bob.ID, ranking[1].UserID)
	assert.False(t, ranking[1].EverPassed)
}
