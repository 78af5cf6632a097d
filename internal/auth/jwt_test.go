package auth

import (
	"testing"

	"supermarket-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	secret := "test-secret-0123456789abcdef0123456789"
	user := &models.User{
		ID:    uuid.New(),
		Email: "owner@acme.example",
	}

	signed, err := GenerateToken(secret, user)
	require.NoError(t, err)

	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "owner@acme.example"}

	signed, err := GenerateToken("correct-secret-0123456789abcdef", user)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(signed, &JWTCustomClaims{}, func(token *jwt.Token) (any, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
