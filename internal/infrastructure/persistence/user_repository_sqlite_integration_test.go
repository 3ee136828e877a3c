//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/infrastructure/persistence/models"
	"github.com/turrs/bank-skd/internal/pkg/config"
)

func TestUserSqliteRepository_Create(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	user := tc.CreateTestUser(t, users.RoleUser)

	var model models.UserModel
	err := tc.DB.First(&model, "id = ?", user.ID).Error
	require.NoError(t, err)
	assert.Equal(t, user.Email, model.Email)
	assert.Equal(t, users.RoleUser, model.Role)
}

func TestUserSqliteRepository_Create_DuplicateEmail(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	user := tc.CreateTestUser(t, users.RoleUser)

	dup := users.NewUser(user.Email, "Other", "")
	dup.PasswordHash = user.PasswordHash
	err := tc.UserRepo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestUserSqliteRepository_Create_Invalid(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.UserRepo.Create(context.Background(), &users.User{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestUserSqliteRepository_GetByEmail_CaseInsensitive(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	user := tc.CreateTestUser(t, users.RoleMentor)

	found, err := tc.UserRepo.GetByEmail(context.Background(), "  "+user.Email+" ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserSqliteRepository_GetByID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.UserRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestUserSqliteRepository_List_ByRole(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	tc.CreateTestUser(t, users.RoleUser)
	tc.CreateTestUser(t, users.RoleUser)
	mentor := tc.CreateTestUser(t, users.RoleMentor)

	query := users.NewUserQuery()
	query.Role = users.RoleMentor
	found, err := tc.UserRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mentor.ID, found[0].ID)

	query = users.NewUserQuery()
	query.SortOrder = "sideways"
	_, err = tc.UserRepo.List(context.Background(), query)
	assert.Error(t, err)
}

func TestUserSqliteRepository_UpdateAndDelete(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	user := tc.CreateTestUser(t, users.RoleUser)
	user.FullName = "Renamed User"
	user.IsActive = false
	require.NoError(t, tc.UserRepo.UpdateByID(ctx, user))

	found, err := tc.UserRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", found.FullName)
	assert.False(t, found.IsActive)

	require.NoError(t, tc.UserRepo.DeleteByID(ctx, user.ID))
	assert.ErrorIs(t, tc.UserRepo.DeleteByID(ctx, user.ID), users.ErrNotFound)
}
