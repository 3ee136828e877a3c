package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/users"
)

// TestPassword is the password of every user built by NewTestUser
const TestPassword = "secret123"

// NewTestUser builds a valid user with role and TestPassword
func NewTestUser(t *testing.T, role string) *users.User {
	t.Helper()

	u := users.NewUser(fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]), "Test "+role, "08123456789")
	u.Role = role
	require.NoError(t, u.SetPassword(TestPassword, bcrypt.MinCost))
	return u
}

// NewTestPackage builds an active package created by creatorID
func NewTestPackage(creatorID string, price int64) *catalog.Package {
	return &catalog.Package{
		ID:              uuid.NewString(),
		Title:           "Tryout SKD " + uuid.NewString()[:6],
		Description:     "Paket latihan",
		Price:           price,
		DurationMinutes: 100,
		IsActive:        true,
		PassingTWK:      catalog.DefaultPassingTWK,
		PassingTIU:      catalog.DefaultPassingTIU,
		PassingTKP:      catalog.DefaultPassingTKP,
		CreatedBy:       creatorID,
		DateTimeCreated: time.Now().UTC(),
	}
}

// NewTestQuestion builds a question of category for packageID.
// TWK and TIU questions have A as the correct option; TKP weights run
// from 5 on A down to 1 on E.
func NewTestQuestion(packageID, category, tag string, position int) *catalog.Question {
	q := &catalog.Question{
		ID:        uuid.NewString(),
		PackageID: packageID,
		Category:  category,
		Tag:       tag,
		Content:   fmt.Sprintf("%s question %d", category, position),
		Position:  position,
	}
	for i, key := range []string{"A", "B", "C", "D", "E"} {
		opt := catalog.Option{Key: key, Text: "Option " + key}
		if category == catalog.CategoryTKP {
			opt.Score = 5 - i
		}
		q.Options = append(q.Options, opt)
	}
	if category != catalog.CategoryTKP {
		q.CorrectOption = "A"
		q.Explanation = "A is correct"
	}
	return q
}

// NewTestQuestionSet builds perCategory questions for every SKD category
func NewTestQuestionSet(packageID string, perCategory int) []*catalog.Question {
	var out []*catalog.Question
	position := 1
	for _, category := range catalog.Categories {
		for i := 0; i < perCategory; i++ {
			out = append(out, NewTestQuestion(packageID, category, fmt.Sprintf("%s-tag-%d", category, i%2), position))
			position++
		}
	}
	return out
}
