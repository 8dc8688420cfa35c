package authutils

import (
	"hr-payroll-backend/config"
	"hr-payroll-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.JWTRefreshExpireInSec = 120
}

func TestParseRefreshToken(t *testing.T) {
	initTestConfig()
	t.Run("refresh token", func(t *testing.T) {
		token, err := GetRefreshToken("user-1", "Иван")
		require.NoError(t, err)
		userID, err := ParseRefreshToken(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", userID)
	})
	t.Run("access token не принимается", func(t *testing.T) {
		token, err := GetToken("user-1", "Иван", "EMP001", models.EmployeeRole)
		require.NoError(t, err)
		_, err = ParseRefreshToken(token)
		require.Error(t, err)
	})
	t.Run("чужая подпись", func(t *testing.T) {
		token, err := GetRefreshToken("user-1", "Иван")
		require.NoError(t, err)
		config.Conf.Auth.JWTSecret = "other"
		defer func() { config.Conf.Auth.JWTSecret = "test-secret" }()
		_, err = ParseRefreshToken(token)
		require.Error(t, err)
	})
	t.Run("мусор", func(t *testing.T) {
		_, err := ParseRefreshToken("abc")
		require.Error(t, err)
	})
}
