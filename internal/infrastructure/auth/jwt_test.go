package auth

import (
	"testing"
	"time"

	"github.com/freshline/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(
		config.JWTConfig{
			Secret:          "test-secret-key-at-least-32-chars",
			TokenExpiration: 15 * time.Minute,
			Issuer:          "freshline-backend",
		},
		config.AuthConfig{
			Username: "admin",
			Password: "correct horse battery staple",
		},
	)
}

func TestService_Login(t *testing.T) {
	s := newTestService()

	token, err := s.Login("admin", "correct horse battery staple")
	require.NoError(t, err)

	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)
}

func TestService_Login_WrongCredentials(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "correct horse battery staple"},
		{"both wrong", "root", "nope"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestService_Validate(t *testing.T) {
	s := newTestService()

	token, err := s.Login("admin", "correct horse battery staple")
	require.NoError(t, err)

	claims, err := s.Validate(token.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "freshline-backend", claims.Issuer)
	assert.Equal(t, "admin", claims.Subject)
}

func TestService_Validate_Garbage(t *testing.T) {
	s := newTestService()

	_, err := s.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Validate_WrongSecret(t *testing.T) {
	s := newTestService()
	other := NewService(
		config.JWTConfig{
			Secret:          "a-completely-different-secret-key",
			TokenExpiration: 15 * time.Minute,
			Issuer:          "freshline-backend",
		},
		config.AuthConfig{Username: "admin", Password: "pw"},
	)

	token, err := other.Login("admin", "pw")
	require.NoError(t, err)

	_, err = s.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_Validate_Expired(t *testing.T) {
	s := NewService(
		config.JWTConfig{
			Secret:          "test-secret-key-at-least-32-chars",
			TokenExpiration: -time.Minute,
			Issuer:          "freshline-backend",
		},
		config.AuthConfig{Username: "admin", Password: "pw"},
	)

	token, err := s.Login("admin", "pw")
	require.NoError(t, err)

	_, err = s.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
