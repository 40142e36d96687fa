package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestVerifier_ValidToken(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, jwt.MapClaims{
		"id_usuario": "medico-1",
		"nombres":    "Ana",
		"apellidos":  "García",
		"correo":     "ana@example.com",
		"rol":        "medico",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "medico-1", claims.UserID)
	assert.Equal(t, "Ana", claims.Nombres)
	assert.Equal(t, "García", claims.Apellidos)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "medico", claims.Rol)
}

func TestVerifier_SubjectFallback(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "usuario-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "usuario-7", claims.UserID)
}

func TestVerifier_Rejects(t *testing.T) {
	v, err := NewVerifier(testSecret)
	require.NoError(t, err)

	t.Run("token vacío", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrTokenEmpty)
	})

	t.Run("firma con otro secreto", func(t *testing.T) {
		token := signToken(t, "otro-secreto", jwt.MapClaims{
			"id_usuario": "medico-1",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})
		_, err := v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token expirado", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"id_usuario": "medico-1",
			"exp":        time.Now().Add(-time.Hour).Unix(),
		})
		_, err := v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("sin id de usuario", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		_, err := v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := NewVerifier(" ")
	assert.ErrorIs(t, err, ErrNoSecret)
}
