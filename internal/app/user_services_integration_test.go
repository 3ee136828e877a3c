//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/config"
	"github.com/turrs/bank-skd/internal/pkg/testutil"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user, err := services.AuthService.Register(ctx, " Budi@Example.com ", "rahasia1", "Budi Santoso", "081234567890")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.Equal(t, users.RoleUser, user.Role)

	_, err = services.AuthService.Register(ctx, "BUDI@example.com", "rahasia2", "Budi Lain", "")
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	_, err = services.AuthService.Register(ctx, "short@example.com", "123", "Short", "")
	assert.Error(t, err)

	token, err := services.AuthService.Login(ctx, "budi@example.com", "rahasia1")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	require.NotNil(t, token.User.LastLoginAt)

	claims, err := services.Issuer.Parse(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, users.RoleUser, claims.Role)

	_, err = services.AuthService.Login(ctx, "budi@example.com", "salah")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
	_, err = services.AuthService.Login(ctx, "nobody@example.com", "rahasia1")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestAuthService_ProfileAndPassword(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	user := services.DBContext.CreateTestUser(t, users.RoleUser)

	updated, err := services.AuthService.UpdateProfile(ctx, user.ID, "  Siti Aminah ", "0811111111")
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", updated.FullName)

	err = services.AuthService.ChangePassword(ctx, user.ID, "wrong-pass", "baru1234")
	assert.ErrorIs(t, err, users.ErrWrongPassword)

	require.NoError(t, services.AuthService.ChangePassword(ctx, user.ID, testutil.TestPassword, "baru1234"))
	_, err = services.AuthService.Login(ctx, user.Email, "baru1234")
	assert.NoError(t, err)
}

func TestUserAdminService_ManageAccounts(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	admin := services.DBContext.CreateTestUser(t, users.RoleAdmin)
	member := services.DBContext.CreateTestUser(t, users.RoleUser)

	_, err := services.UserAdminService.SetRole(ctx, admin.Actor(), admin.ID, users.RoleUser)
	assert.ErrorIs(t, err, users.ErrSelfDemotion)

	promoted, err := services.UserAdminService.SetRole(ctx, admin.Actor(), member.ID, users.RoleMentor)
	require.NoError(t, err)
	assert.Equal(t, users.RoleMentor, promoted.Role)

	_, err = services.UserAdminService.SetActive(ctx, admin.Actor(), member.ID, false)
	require.NoError(t, err)
	_, err = services.AuthService.Login(ctx, member.Email, testutil.TestPassword)
	assert.ErrorIs(t, err, users.ErrAccountDeactivated)

	mentors, err := services.UserAdminService.List(ctx, &users.UserQuery{Role: users.RoleMentor, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, member.ID, mentors[0].ID)

	require.NoError(t, services.UserAdminService.DeleteByID(ctx, admin.Actor(), member.ID))
	_, err = services.AuthService.GetProfile(ctx, member.ID)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestUserAdminService_EnsureAdmin(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	created, err := services.UserAdminService.EnsureAdmin(ctx, "root@example.com", "admin123", "Root Admin")
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, created.Role)

	again, err := services.UserAdminService.EnsureAdmin(ctx, "ROOT@example.com", "admin456", "Root Admin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	_, err = services.AuthService.Login(ctx, "root@example.com", "admin456")
	assert.NoError(t, err)
}
