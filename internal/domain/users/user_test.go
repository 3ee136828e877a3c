//go:build unit
// +build unit

package users

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/turrs/bank-skd/internal/pkg/apperrors"
)

func TestNewUser_Normalizes(t *testing.T) {
	u := NewUser("  Budi@Example.COM ", " Budi Santoso ", "081234567890")

	assert.Equal(t, "budi@example.com", u.Email)
	assert.Equal(t, "Budi Santoso", u.FullName)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
}

func TestUser_SetPassword(t *testing.T) {
	u := NewUser("budi@example.com", "Budi", "")

	err := u.SetPassword("12345", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	assert.True(t, errors.Is(err, apperrors.ErrInvalid))

	require.NoError(t, u.SetPassword("rahasia", bcrypt.MinCost))
	assert.NotEqual(t, "rahasia", u.PasswordHash)
	assert.True(t, u.CheckPassword("rahasia"))
	assert.False(t, u.CheckPassword("Rahasia"))
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr bool
	}{
		{"valid", func(u *User) {}, false},
		{"bad email", func(u *User) { u.Email = "not-an-email" }, true},
		{"short name", func(u *User) { u.FullName = "B" }, true},
		{"unknown role", func(u *User) { u.Role = "superuser" }, true},
		{"phone with letters", func(u *User) { u.Phone = "08abc" }, true},
		{"missing hash", func(u *User) { u.PasswordHash = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUser("budi@example.com", "Budi Santoso", "081234567890")
			require.NoError(t, u.SetPassword("rahasia", bcrypt.MinCost))
			tt.mutate(u)

			err := u.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActor_CanManage(t *testing.T) {
	admin := Actor{UserID: "a", Role: RoleAdmin}
	mentor := Actor{UserID: "m", Role: RoleMentor}
	user := Actor{UserID: "u", Role: RoleUser}

	assert.True(t, admin.CanManage("m"))
	assert.True(t, mentor.CanManage("m"))
	assert.False(t, mentor.CanManage("other"))
	assert.False(t, user.CanManage("u"))
}
