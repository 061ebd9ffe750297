package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/users"
)

func validUser() *users.User {
	return &users.User{
		UserName:  "ada.lovelace",
		Email:     "ada@example.com",
		Password:  "Str0ngPass",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Roles:     []string{"USER"},
	}
}

func TestUser_Validate(t *testing.T) {
	t.Run("valid create form", func(t *testing.T) {
		require.NoError(t, validUser().Validate(true))
	})

	t.Run("missing userName", func(t *testing.T) {
		u := validUser()
		u.UserName = "  "
		err := u.Validate(true)
		require.Error(t, err)
		require.Contains(t, err.Error(), "userName is required")
	})

	t.Run("userName with invalid characters", func(t *testing.T) {
		u := validUser()
		u.UserName = "ada lovelace"
		require.Error(t, u.Validate(true))
	})

	t.Run("missing email", func(t *testing.T) {
		u := validUser()
		u.Email = ""
		err := u.Validate(true)
		require.Error(t, err)
		require.Contains(t, err.Error(), "email is required")
	})

	t.Run("malformed email", func(t *testing.T) {
		u := validUser()
		u.Email = "not-an-email"
		err := u.Validate(true)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid email format")
	})

	t.Run("no roles", func(t *testing.T) {
		u := validUser()
		u.Roles = nil
		err := u.Validate(true)
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least one role")
	})

	t.Run("password only required on create", func(t *testing.T) {
		u := validUser()
		u.Password = ""
		require.Error(t, u.Validate(true))
		require.NoError(t, u.Validate(false))
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Str0ngPass", ""},
		{"too short", "Ab1", "at least 8 characters"},
		{"no uppercase", "weakpass1", "uppercase"},
		{"no lowercase", "WEAKPASS1", "lowercase"},
		{"no number", "WeakPassword", "number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := users.ValidatePasswordStrength(tc.password)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestUser_HasRole(t *testing.T) {
	u := validUser()
	require.True(t, u.HasRole("USER"))
	require.False(t, u.HasRole("ADMIN"))
}
