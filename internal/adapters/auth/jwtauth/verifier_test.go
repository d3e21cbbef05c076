package jwtauth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewVerifier("test-secret")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "user-1",
		"email": "user@example.com",
	})

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewVerifier("test-secret")

	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})

	_, err := v.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestVerify_MissingSubject(t *testing.T) {
	v := NewVerifier("test-secret")

	token := signToken(t, "test-secret", jwt.MapClaims{"email": "user@example.com"})

	_, err := v.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestVerify_EmptyTokenAndUnconfigured(t *testing.T) {
	v := NewVerifier("test-secret")
	_, err := v.Verify(context.Background(), "   ")
	require.ErrorIs(t, err, ErrTokenEmpty)

	unconfigured := NewVerifier("")
	_, err = unconfigured.Verify(context.Background(), "whatever")
	require.ErrorIs(t, err, ErrNotConfigured)
}
