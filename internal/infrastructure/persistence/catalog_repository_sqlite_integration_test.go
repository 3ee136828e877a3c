//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

func TestPackageSqliteRepository_GetByID_CountsQuestions(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	pkg, questions := tc.CreateTestPackage(t, admin.ID, 0, 2)

	found, err := tc.PackageRepo.GetByID(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.Title, found.Title)
	assert.Equal(t, int64(len(questions)), found.QuestionCount)
	assert.Equal(t, catalog.DefaultPassingTKP, found.PassingTKP)
}

func TestPackageSqliteRepository_GetByID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.PackageRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, catalog.ErrPackageNotFound)
}

func TestPackageSqliteRepository_List_HidesInactive(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	active, _ := tc.CreateTestPackage(t, admin.ID, 50000, 1)
	inactive := testutil.NewTestPackage(admin.ID, 0)
	inactive.IsActive = false
	require.NoError(t, tc.PackageRepo.Create(ctx, inactive))

	found, err := tc.PackageRepo.List(ctx, catalog.NewPackageQuery())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)
	assert.Equal(t, int64(3), found[0].QuestionCount)

	query := catalog.NewPackageQuery()
	query.IncludeInactive = true
	found, err = tc.PackageRepo.List(ctx, query)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestPackageSqliteRepository_DeleteByID_RemovesQuestions(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	pkg, _ := tc.CreateTestPackage(t, admin.ID, 0, 2)

	require.NoError(t, tc.PackageRepo.DeleteByID(ctx, pkg.ID))

	var count int64
	require.NoError(t, tc.DB.Model(&models.QuestionModel{}).Where("package_id = ?", pkg.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, tc.PackageRepo.DeleteByID(ctx, pkg.ID), catalog.ErrPackageNotFound)
}

func TestQuestionSqliteRepository_OptionsRoundTripAndOrder(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	pkg, questions := tc.CreateTestPackage(t, admin.ID, 0, 1)

	listed, err := tc.QuestionRepo.ListByPackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, listed, len(questions))
	for i, q := range listed {
		assert.Equal(t, questions[i].ID, q.ID)
		assert.Equal(t, questions[i].Options, q.Options)
	}

	next, err := tc.QuestionRepo.NextPosition(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, len(questions)+1, next)

	empty, err := tc.QuestionRepo.NextPosition(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, 1, empty)
}

func TestQuestionSqliteRepository_UpdateAndDelete(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	pkg, questions := tc.CreateTestPackage(t, admin.ID, 0, 1)

	q := questions[0]
	q.CorrectOption = "C"
	q.Tag = "pancasila"
	require.NoError(t, tc.QuestionRepo.UpdateByID(ctx, q))

	found, err := tc.QuestionRepo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", found.CorrectOption)
	assert.Equal(t, pkg.ID, found.PackageID)

	require.NoError(t, tc.QuestionRepo.DeleteByID(ctx, q.ID))
	_, err = tc.QuestionRepo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, catalog.ErrQuestionNotFound)
}

func TestQuestionSqliteRepository_CreateBatch_RejectsInvalid(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	admin := tc.CreateTestUser(t, users.RoleAdmin)
	pkg, _ := tc.CreateTestPackage(t, admin.ID, 0, 0)

	good := testutil.NewTestQuestion(pkg.ID, catalog.CategoryTWK, "", 1)
	bad := testutil.NewTestQuestion(pkg.ID, catalog.CategoryTIU, "", 2)
	bad.CorrectOption = ""

	err := tc.QuestionRepo.CreateBatch(ctx, []*catalog.Question{good, bad})
	require.Error(t, err)

	listed, err := tc.QuestionRepo.ListByPackage(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
