//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

func TestPackageService_CreateAppliesDefaults(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	mentor := services.DBContext.CreateTestUser(t, users.RoleMentor)
	member := services.DBContext.CreateTestUser(t, users.RoleUser)

	draft := func() *catalog.Package {
		return &catalog.Package{Title: "Tryout Akbar", Price: 35000, DurationMinutes: 100, IsActive: true}
	}

	_, err := services.PackageService.Create(ctx, member.Actor(), draft())
	assert.ErrorIs(t, err, catalog.ErrNotOwner)

	pkg, err := services.PackageService.Create(ctx, mentor.Actor(), draft())
	require.NoError(t, err)
	assert.Equal(t, mentor.ID, pkg.CreatedBy)
	assert.Equal(t, catalog.DefaultPassingTWK, pkg.PassingTWK)
	assert.Equal(t, catalog.DefaultPassingTIU, pkg.PassingTIU)
	assert.Equal(t, catalog.DefaultPassingTKP, pkg.PassingTKP)
}

func TestPackageService_OnlyOwnerOrAdminChanges(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.DBContext.CreateTestUser(t, users.RoleMentor)
	rival := services.DBContext.CreateTestUser(t, users.RoleMentor)
	admin := services.DBContext.CreateTestUser(t, users.RoleAdmin)
	pkg, _ := services.DBContext.CreateTestPackage(t, owner.ID, 10000, 1)

	pkg.Title = "Diubah"
	_, err := services.PackageService.Update(ctx, rival.Actor(), pkg)
	assert.ErrorIs(t, err, catalog.ErrNotOwner)

	updated, err := services.PackageService.Update(ctx, admin.Actor(), pkg)
	require.NoError(t, err)
	assert.Equal(t, "Diubah", updated.Title)
	assert.Equal(t, owner.ID, updated.CreatedBy)
	assert.Equal(t, int64(3), updated.QuestionCount)

	err = services.PackageService.Delete(ctx, rival.Actor(), pkg.ID)
	assert.ErrorIs(t, err, catalog.ErrNotOwner)

	require.NoError(t, services.PackageService.Delete(ctx, owner.Actor(), pkg.ID))
	_, err = services.PackageService.GetByID(ctx, pkg.ID)
	assert.ErrorIs(t, err, catalog.ErrPackageNotFound)
}

func TestQuestionService_CreateImportAndEdit(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.DBContext.CreateTestUser(t, users.RoleMentor)
	rival := services.DBContext.CreateTestUser(t, users.RoleMentor)
	pkg, _ := services.DBContext.CreateTestPackage(t, owner.ID, 0, 1)

	q := testutil.NewTestQuestion(pkg.ID, catalog.CategoryTIU, "silogisme", 0)
	created, err := services.QuestionService.Create(ctx, owner.Actor(), q)
	require.NoError(t, err)
	assert.Equal(t, 4, created.Position, "appended after the three seeded questions")

	_, err = services.QuestionService.Create(ctx, rival.Actor(), testutil.NewTestQuestion(pkg.ID, catalog.CategoryTWK, "", 0))
	assert.ErrorIs(t, err, catalog.ErrNotOwner)

	batch := []*catalog.Question{
		testutil.NewTestQuestion("", catalog.CategoryTKP, "pelayanan", 0),
		testutil.NewTestQuestion("", catalog.CategoryTKP, "pelayanan", 0),
	}
	n, err := services.QuestionService.Import(ctx, owner.Actor(), pkg.ID, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := services.QuestionService.ListByPackage(ctx, owner.Actor(), pkg.ID)
	require.NoError(t, err)
	require.Len(t, list, 6)
	assert.Equal(t, 6, list[5].Position)
	assert.Equal(t, pkg.ID, list[5].PackageID)

	created.Content = "Semua A adalah B"
	created.CorrectOption = "B"
	edited, err := services.QuestionService.Update(ctx, owner.Actor(), created)
	require.NoError(t, err)
	assert.Equal(t, 4, edited.Position)

	got, err := services.QuestionService.GetByID(ctx, owner.Actor(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.CorrectOption)

	_, err = services.QuestionService.ListByPackage(ctx, rival.Actor(), pkg.ID)
	assert.ErrorIs(t, err, catalog.ErrNotOwner)

	require.NoError(t, services.QuestionService.Delete(ctx, owner.Actor(), created.ID))
	_, err = services.QuestionService.GetByID(ctx, owner.Actor(), created.ID)
	assert.ErrorIs(t, err, catalog.ErrQuestionNotFound)
}

func TestQuestionService_ImportRejectsInvalidBatch(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	owner := services.DBContext.CreateTestUser(t, users.RoleMentor)
	pkg, _ := services.DBContext.CreateTestPackage(t, owner.ID, 0, 1)

	bad := testutil.NewTestQuestion("", catalog.CategoryTWK, "", 0)
	bad.CorrectOption = ""
	_, err := services.QuestionService.Import(ctx, owner.Actor(), pkg.ID, []*catalog.Question{
		testutil.NewTestQuestion("", catalog.CategoryTWK, "", 0),
		bad,
	})
	require.Error(t, err)

	list, err := services.QuestionService.ListByPackage(ctx, owner.Actor(), pkg.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3, "nothing from a failed batch is stored")
}
